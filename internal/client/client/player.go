package client

import (
	"context"
	"net/http"

	"github.com/samterminal/samclient/internal/client/models"
)

func (c *HTTPClient) Inventory(ctx context.Context, token string) ([]models.Item, error) {
	var out []itemDTO
	if err := c.doJSON(ctx, ErrInventoryFailed, http.MethodGet, "/api/player/inventory", token, nil, &out); err != nil {
		return nil, err
	}
	return mapItems(out), nil
}

func (c *HTTPClient) Memories(ctx context.Context, token string) ([]models.Memory, error) {
	var out []memoryDTO
	if err := c.doJSON(ctx, ErrMemoriesFailed, http.MethodGet, "/api/player/memories", token, nil, &out); err != nil {
		return nil, err
	}
	return mapMemories(out), nil
}

// Progress lists the codes of locations the player has unlocked.
func (c *HTTPClient) Progress(ctx context.Context, token string) ([]string, error) {
	var out []string
	if err := c.doJSON(ctx, ErrProgressFailed, http.MethodGet, "/api/player/progress", token, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// UploadImage posts data as the "file" field of a multipart form and
// returns the stored image URL resolved against the base.
func (c *HTTPClient) UploadImage(ctx context.Context, token, filename string, data []byte) (*models.UploadResult, error) {
	var out uploadResponse
	if err := c.doMultipart(ctx, ErrUploadFailed, "/api/upload/image", token, "file", filename, data, &out); err != nil {
		return nil, err
	}
	return mapUpload(c.base, out), nil
}
