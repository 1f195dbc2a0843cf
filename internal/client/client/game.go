package client

import (
	"context"
	"net/http"

	"github.com/samterminal/samclient/internal/client/models"
)

// Status fetches the player's state. The current location is synthesized
// from the flat fields of the payload; see mapState.
func (c *HTTPClient) Status(ctx context.Context, token string) (*models.GameState, error) {
	var out gameStateDTO
	if err := c.doJSON(ctx, ErrStatusFailed, http.MethodGet, "/api/game/status", token, nil, &out); err != nil {
		return nil, err
	}
	st := mapState(&out)
	return &st, nil
}

// Chat sends one player message. sessionID may be empty; the reply then
// carries the session the backend picked.
func (c *HTTPClient) Chat(ctx context.Context, token, message, sessionID string) (*models.ChatResult, error) {
	var out chatResponse
	in := chatRequest{Message: message, SessionID: sessionID}
	if err := c.doJSON(ctx, ErrChatFailed, http.MethodPost, "/api/game/chat", token, in, &out); err != nil {
		return nil, err
	}
	return mapChat(c.base, &out), nil
}

func (c *HTTPClient) CreateSession(ctx context.Context, token string) (string, error) {
	var out sessionResponse
	if err := c.doJSON(ctx, ErrCreateSessionFailed, http.MethodPost, "/api/game/session", token, nil, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// RecallMemory replays a stored memory into the conversation. The reply
// has the same shape as a chat turn.
func (c *HTTPClient) RecallMemory(ctx context.Context, token, memoryID, sessionID string) (*models.ChatResult, error) {
	var out chatResponse
	in := recallRequest{MemoryID: memoryID, SessionID: sessionID}
	if err := c.doJSON(ctx, ErrRecallFailed, http.MethodPost, "/api/game/memory/recall", token, in, &out); err != nil {
		return nil, err
	}
	return mapChat(c.base, &out), nil
}
