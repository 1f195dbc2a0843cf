package client

import (
	"context"
	"net/http"

	"github.com/samterminal/samclient/internal/client/models"
)

func (c *HTTPClient) LLMSetting(ctx context.Context, token string) (*models.LLMSetting, error) {
	var out llmSettingDTO
	if err := c.doJSON(ctx, ErrLLMSettingFailed, http.MethodGet, "/api/admin/system/llm", token, nil, &out); err != nil {
		return nil, err
	}
	return &models.LLMSetting{BaseURL: out.BaseURL, ModelName: out.ModelName, Temperature: out.Temperature}, nil
}

func (c *HTTPClient) SaveLLMSetting(ctx context.Context, token string, s models.LLMSetting) error {
	in := llmSettingDTO{BaseURL: s.BaseURL, ModelName: s.ModelName, Temperature: s.Temperature, APIKey: s.APIKey}
	return c.doJSON(ctx, ErrSaveLLMSettingFailed, http.MethodPost, "/api/admin/system/llm", token, in, nil)
}

// TestLLM returns the backend's connection status string, e.g. "connected".
func (c *HTTPClient) TestLLM(ctx context.Context, token string) (string, error) {
	var out statusResponse
	if err := c.doJSON(ctx, ErrTestLLMFailed, http.MethodPost, "/api/admin/system/llm/test", token, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *HTTPClient) LLMAPIs(ctx context.Context, token string) ([]models.LLMAPIConfig, error) {
	var out []llmAPIConfigResponse
	if err := c.doJSON(ctx, ErrLLMAPIsFailed, http.MethodGet, "/api/admin/system/llm-apis", token, nil, &out); err != nil {
		return nil, err
	}
	res := make([]models.LLMAPIConfig, 0, len(out))
	for _, r := range out {
		res = append(res, mapLLMAPIConfig(r))
	}
	return res, nil
}

func (c *HTTPClient) CreateLLMAPI(ctx context.Context, token string, cfg models.LLMAPIConfig) (*models.LLMAPIConfig, error) {
	return c.llmAPICall(ctx, ErrCreateLLMAPIFailed, http.MethodPost, "/api/admin/system/llm-apis", token, llmAPIConfigToRequest(cfg))
}

func (c *HTTPClient) UpdateLLMAPI(ctx context.Context, token string, id int64, cfg models.LLMAPIConfig) (*models.LLMAPIConfig, error) {
	return c.llmAPICall(ctx, ErrUpdateLLMAPIFailed, http.MethodPut, "/api/admin/system/llm-apis/"+idString(id), token, llmAPIConfigToRequest(cfg))
}

func (c *HTTPClient) DeleteLLMAPI(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, ErrDeleteLLMAPIFailed, http.MethodDelete, "/api/admin/system/llm-apis/"+idString(id), token, nil, nil)
}

func (c *HTTPClient) ResetLLMAPITokens(ctx context.Context, token string, id int64) (*models.LLMAPIConfig, error) {
	return c.llmAPICall(ctx, ErrResetTokensFailed, http.MethodPost, "/api/admin/system/llm-apis/"+idString(id)+"/reset-tokens", token, nil)
}

// TestLLMAPI probes one pool entry; the result is "connected" or "failed".
func (c *HTTPClient) TestLLMAPI(ctx context.Context, token string, id int64) (string, error) {
	var out statusResponse
	if err := c.doJSON(ctx, ErrTestLLMAPIFailed, http.MethodPost, "/api/admin/system/llm-apis/"+idString(id)+"/test", token, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *HTTPClient) llmAPICall(ctx context.Context, kind error, method, path, token string, in any) (*models.LLMAPIConfig, error) {
	var out llmAPIConfigResponse
	if err := c.doJSON(ctx, kind, method, path, token, in, &out); err != nil {
		return nil, err
	}
	cfg := mapLLMAPIConfig(out)
	return &cfg, nil
}

func (c *HTTPClient) Usage(ctx context.Context, token string) (*models.Usage, error) {
	var out usageResponse
	if err := c.doJSON(ctx, ErrUsageFailed, http.MethodGet, "/api/admin/users/usage", token, nil, &out); err != nil {
		return nil, err
	}
	users := make([]models.UserUsage, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, models.UserUsage(u))
	}
	return &models.Usage{GlobalLimit: out.GlobalLimit, Users: users}, nil
}

func (c *HTTPClient) SetGlobalLimit(ctx context.Context, token string, limit int64) error {
	return c.doJSON(ctx, ErrGlobalLimitFailed, http.MethodPost, "/api/admin/settings/global-limit", token, limitRequest{Limit: &limit}, nil)
}

// SetUserLimit sets a per-user token limit; nil clears it.
func (c *HTTPClient) SetUserLimit(ctx context.Context, token string, userID int64, limit *int64) error {
	return c.doJSON(ctx, ErrUserLimitFailed, http.MethodPost, "/api/admin/users/"+idString(userID)+"/limit", token, limitRequest{Limit: limit}, nil)
}
