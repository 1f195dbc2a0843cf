package client

import (
	"context"
	"net/http"

	"github.com/samterminal/samclient/internal/client/models"
)

func (c *HTTPClient) AdminFireflyAssets(ctx context.Context, token string) ([]models.FireflyAsset, error) {
	var out []fireflyAssetDTO
	if err := c.doJSON(ctx, ErrAdminAssetsFailed, http.MethodGet, "/api/admin/assets/firefly", token, nil, &out); err != nil {
		return nil, err
	}
	return mapFireflyAssets(c.base, out), nil
}

// SaveFireflyAssets replaces the portrait set; assets maps emotion to URL.
func (c *HTTPClient) SaveFireflyAssets(ctx context.Context, token string, assets map[string]string) error {
	return c.doJSON(ctx, ErrSaveAssetsFailed, http.MethodPost, "/api/admin/assets/firefly", token, fireflyAssetsRequest{Assets: assets}, nil)
}

func (c *HTTPClient) AdminDomains(ctx context.Context, token string) ([]models.AdminDomain, error) {
	var out []adminDomainDTO
	if err := c.doJSON(ctx, ErrDomainsFailed, http.MethodGet, "/api/admin/world/domains", token, nil, &out); err != nil {
		return nil, err
	}
	res := make([]models.AdminDomain, 0, len(out))
	for _, d := range out {
		res = append(res, mapAdminDomain(d))
	}
	return res, nil
}

// SaveDomain upserts by id; a zero id creates.
func (c *HTTPClient) SaveDomain(ctx context.Context, token string, d models.AdminDomain) (*models.AdminDomain, error) {
	var out adminDomainDTO
	if err := c.doJSON(ctx, ErrSaveDomainFailed, http.MethodPost, "/api/admin/world/domains", token, adminDomainToDTO(d), &out); err != nil {
		return nil, err
	}
	saved := mapAdminDomain(out)
	return &saved, nil
}

func (c *HTTPClient) DeleteDomain(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, ErrDeleteDomainFailed, http.MethodDelete, "/api/admin/world/domains/"+idString(id), token, nil, nil)
}

func (c *HTTPClient) BatchDomains(ctx context.Context, token string, ds []models.AdminDomain) error {
	in := make([]adminDomainDTO, 0, len(ds))
	for _, d := range ds {
		in = append(in, adminDomainToDTO(d))
	}
	return c.doJSON(ctx, ErrBatchDomainsFailed, http.MethodPost, "/api/admin/world/domains/batch", token, in, nil)
}

func (c *HTTPClient) AdminLocations(ctx context.Context, token string) ([]models.AdminLocation, error) {
	var out []adminLocationDTO
	if err := c.doJSON(ctx, ErrLocationsFailed, http.MethodGet, "/api/admin/world/locations", token, nil, &out); err != nil {
		return nil, err
	}
	res := make([]models.AdminLocation, 0, len(out))
	for _, l := range out {
		res = append(res, mapAdminLocation(c.base, l))
	}
	return res, nil
}

func (c *HTTPClient) SaveLocation(ctx context.Context, token string, l models.AdminLocation) (*models.AdminLocation, error) {
	var out adminLocationDTO
	if err := c.doJSON(ctx, ErrSaveLocationFailed, http.MethodPost, "/api/admin/world/locations", token, adminLocationToDTO(l), &out); err != nil {
		return nil, err
	}
	saved := mapAdminLocation(c.base, out)
	return &saved, nil
}

func (c *HTTPClient) DeleteLocation(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, ErrDeleteLocationFailed, http.MethodDelete, "/api/admin/world/locations/"+idString(id), token, nil, nil)
}

func (c *HTTPClient) BatchLocations(ctx context.Context, token string, ls []models.AdminLocation) error {
	in := make([]adminLocationDTO, 0, len(ls))
	for _, l := range ls {
		in = append(in, adminLocationToDTO(l))
	}
	return c.doJSON(ctx, ErrBatchLocationsFailed, http.MethodPost, "/api/admin/world/locations/batch", token, in, nil)
}

func (c *HTTPClient) AdminCharacters(ctx context.Context, token string) ([]models.Character, error) {
	var out []characterDTO
	if err := c.doJSON(ctx, ErrCharactersFailed, http.MethodGet, "/api/admin/world/characters", token, nil, &out); err != nil {
		return nil, err
	}
	res := make([]models.Character, 0, len(out))
	for _, ch := range out {
		res = append(res, mapCharacter(c.base, ch))
	}
	return res, nil
}

func (c *HTTPClient) SaveCharacter(ctx context.Context, token string, ch models.Character) (*models.Character, error) {
	var out characterDTO
	if err := c.doJSON(ctx, ErrSaveCharacterFailed, http.MethodPost, "/api/admin/world/characters", token, characterToDTO(ch), &out); err != nil {
		return nil, err
	}
	saved := mapCharacter(c.base, out)
	return &saved, nil
}

func (c *HTTPClient) DeleteCharacter(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, ErrDeleteCharacterFailed, http.MethodDelete, "/api/admin/world/characters/"+idString(id), token, nil, nil)
}

func (c *HTTPClient) BatchCharacters(ctx context.Context, token string, cs []models.Character) error {
	in := make([]characterDTO, 0, len(cs))
	for _, ch := range cs {
		in = append(in, characterToDTO(ch))
	}
	return c.doJSON(ctx, ErrBatchCharactersFailed, http.MethodPost, "/api/admin/world/characters/batch", token, in, nil)
}
