package core

import (
	"errors"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{input: "```\n{\"a\": 1}```", want: `{"a": 1}`},
		{input: "  {\"a\": 1}  ", want: `{"a": 1}`},
		{input: "```{}```", want: "{}"},
		{input: "```json {\"title\":\"x\"} ```", want: `{"title":"x"}`},
	}
	for _, tt := range tests {
		if got := StripCodeFence(tt.input); got != tt.want {
			t.Fatalf("StripCodeFence(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestDecodeJSONReply(t *testing.T) {
	var v struct {
		URL *string `json:"url"`
	}
	payload, err := DecodeJSONReply("```json\n{ \"url\" : \"x\" }\n```", &v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.URL == nil || *v.URL != "x" {
		t.Fatalf("unexpected value: %+v", v)
	}
	if string(payload) != `{"url":"x"}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
}

func TestDecodeJSONReplySingleLineFence(t *testing.T) {
	var v struct {
		Title *string `json:"title"`
	}
	if _, err := DecodeJSONReply("```json {\"title\":\"x\"} ```", &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Title == nil || *v.Title != "x" {
		t.Fatalf("unexpected value: %+v", v)
	}
}

func TestDecodeJSONReplyMalformed(t *testing.T) {
	inputs := []string{
		"",
		"[1, 2]",
		"Sure: {\"url\": \"x\"}",
		`{"url": "x",}`,
		`{"url": "x"} trailing`,
		`{"url": 5}`,
	}
	for _, input := range inputs {
		var v struct {
			URL *string `json:"url"`
		}
		_, err := DecodeJSONReply(input, &v)
		var malformed *MalformedReplyError
		if !errors.As(err, &malformed) {
			t.Fatalf("DecodeJSONReply(%q): expected MalformedReplyError, got %v", input, err)
		}
	}
}
