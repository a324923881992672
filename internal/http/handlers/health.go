package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status    string `json:"status"`
	VisionAPI bool   `json:"vision_api"`
	AI        bool   `json:"ai"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		VisionAPI: h.ocr != nil,
		AI:        h.cfg.AI.APIKey != "",
	})
}
