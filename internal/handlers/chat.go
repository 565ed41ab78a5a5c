package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"

	"devchat/internal/middleware"
	"devchat/internal/models"
)

// maxBodyBytes bounds the request body. A 2000 character message fits
// comfortably even when every character is \u-escaped.
const maxBodyBytes = 64 << 10

const (
	msgInvalidBody = "Invalid request body"
	msgBodyTooBig  = "Request body too large"
	msgNotString   = "message must be a string"
	msgEmpty       = "Message cannot be empty."
)

var msgTooLong = fmt.Sprintf("Message cannot be longer than %d characters.", models.MaxMessageLength)

type messageProcessor interface {
	ProcessMessage(ctx context.Context, message string) (*models.ChatResponse, error)
}

type ChatHandler struct {
	chatService messageProcessor
}

func NewChatHandler(chatService messageProcessor) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// HandleChat answers POST /chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if errors.As(err, new(*http.MaxBytesError)) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp(http.StatusRequestEntityTooLarge, msgBodyTooBig))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(http.StatusBadRequest, msgInvalidBody))
		return
	}

	req, violations, ok := parseChatRequest(body)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp(http.StatusBadRequest, msgInvalidBody))
		return
	}
	if len(violations) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResp(http.StatusBadRequest, violations))
		return
	}

	resp, err := h.chatService.ProcessMessage(r.Context(), req.Message)
	if err != nil {
		log.Printf("[%s] chat request failed: %v", middleware.GetRequestID(r), err)
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseChatRequest decodes and validates a chat payload. ok is false when
// the body is not a JSON object at all. Unknown properties are violations.
// A value that is not a string fails every rule that needs a string, so it
// also reports the length rule.
func parseChatRequest(body []byte) (req models.ChatRequest, violations []string, ok bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req, nil, false
	}

	unknown := make([]string, 0, len(fields))
	for name := range fields {
		if name != "message" {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		violations = append(violations, fmt.Sprintf("property %s should not exist", name))
	}

	raw, present := fields["message"]
	raw = bytes.TrimSpace(raw)
	if !present || bytes.Equal(raw, []byte("null")) {
		return req, append(violations, msgNotString, msgEmpty, msgTooLong), true
	}
	if len(raw) == 0 || raw[0] != '"' {
		return req, append(violations, msgNotString, msgTooLong), true
	}
	if err := json.Unmarshal(raw, &req.Message); err != nil {
		return req, append(violations, msgNotString, msgTooLong), true
	}

	trimmed := strings.TrimSpace(req.Message)
	switch {
	case trimmed == "":
		violations = append(violations, msgEmpty)
	case utf8.RuneCountInString(trimmed) > models.MaxMessageLength:
		violations = append(violations, msgTooLong)
	}

	return req, violations, true
}
