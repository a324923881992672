package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MalformedReplyError reports a completion that is not a single JSON object
// of the expected shape.
type MalformedReplyError struct {
	Reason string
	Err    error
}

// Error implements error.
func (e *MalformedReplyError) Error() string {
	if e == nil {
		return "malformed reply"
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed reply: %s: %v", e.Reason, e.Err)
	}
	return "malformed reply: " + e.Reason
}

// Unwrap returns the underlying decode error.
func (e *MalformedReplyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StripCodeFence removes a leading ``` (or ```json) line and a trailing ```.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	firstBreak := strings.Index(trimmed, "\n")
	if firstBreak < 0 {
		body := strings.TrimSpace(strings.Trim(trimmed, "`"))
		if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
			body = strings.TrimSpace(body[4:])
		}
		return body
	}
	trimmed = strings.TrimSpace(trimmed[firstBreak+1:])
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// DecodeJSONReply decodes one JSON object from a completion into v and
// returns the compacted object.
func DecodeJSONReply(raw string, v any) (json.RawMessage, error) {
	body := StripCodeFence(raw)
	if body == "" {
		return nil, &MalformedReplyError{Reason: "empty reply"}
	}
	if !strings.HasPrefix(body, "{") {
		return nil, &MalformedReplyError{Reason: "reply is not a JSON object"}
	}
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return nil, &MalformedReplyError{Reason: "invalid json", Err: err}
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &MalformedReplyError{Reason: "trailing data after object", Err: err}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(body)); err != nil {
		return nil, &MalformedReplyError{Reason: "invalid json", Err: err}
	}
	return json.RawMessage(compact.Bytes()), nil
}
