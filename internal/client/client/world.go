package client

import (
	"context"
	"net/http"

	"github.com/samterminal/samclient/internal/client/models"
)

// Map fetches star domains and locations keyed by id, with background
// URLs resolved against the base.
func (c *HTTPClient) Map(ctx context.Context, token string) (*models.WorldMap, error) {
	var out mapResponse
	if err := c.doJSON(ctx, ErrMapFailed, http.MethodGet, "/api/world/map", token, nil, &out); err != nil {
		return nil, err
	}
	return mapWorld(c.base, &out), nil
}

// FireflyAssets lists the public portrait set. It needs no token.
func (c *HTTPClient) FireflyAssets(ctx context.Context) ([]models.FireflyAsset, error) {
	var out []fireflyAssetDTO
	if err := c.doJSON(ctx, ErrFireflyAssetsFailed, http.MethodGet, "/api/world/assets/firefly", "", nil, &out); err != nil {
		return nil, err
	}
	return mapFireflyAssets(c.base, out), nil
}
