package client

import (
	"context"

	"github.com/samterminal/samclient/internal/client/models"
)

// Client is the player-facing backend API. Token arguments may be empty
// for anonymous calls; no Authorization header is sent then.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
	AdminLogin(ctx context.Context, username, password string) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	SendRegisterEmailCode(ctx context.Context, username, email, altchaPayload string) (*models.EmailCodeSent, error)
	VerifyRegisterEmailCode(ctx context.Context, requestID, email, code string) (*models.EmailCodeVerified, error)
	EmailSendStatus(ctx context.Context, requestID string) (*models.EmailSendStatus, error)

	Status(ctx context.Context, token string) (*models.GameState, error)
	Chat(ctx context.Context, token, message, sessionID string) (*models.ChatResult, error)
	CreateSession(ctx context.Context, token string) (string, error)
	RecallMemory(ctx context.Context, token, memoryID, sessionID string) (*models.ChatResult, error)

	Map(ctx context.Context, token string) (*models.WorldMap, error)
	FireflyAssets(ctx context.Context) ([]models.FireflyAsset, error)

	Inventory(ctx context.Context, token string) ([]models.Item, error)
	Memories(ctx context.Context, token string) ([]models.Memory, error)
	Progress(ctx context.Context, token string) ([]string, error)

	UploadImage(ctx context.Context, token, filename string, data []byte) (*models.UploadResult, error)

	NormalizeURL(u string) string
}

// AdminClient is the administration API. Every call needs an ADMIN token.
type AdminClient interface {
	AdminFireflyAssets(ctx context.Context, token string) ([]models.FireflyAsset, error)
	SaveFireflyAssets(ctx context.Context, token string, assets map[string]string) error

	AdminDomains(ctx context.Context, token string) ([]models.AdminDomain, error)
	SaveDomain(ctx context.Context, token string, d models.AdminDomain) (*models.AdminDomain, error)
	DeleteDomain(ctx context.Context, token string, id int64) error
	BatchDomains(ctx context.Context, token string, ds []models.AdminDomain) error

	AdminLocations(ctx context.Context, token string) ([]models.AdminLocation, error)
	SaveLocation(ctx context.Context, token string, l models.AdminLocation) (*models.AdminLocation, error)
	DeleteLocation(ctx context.Context, token string, id int64) error
	BatchLocations(ctx context.Context, token string, ls []models.AdminLocation) error

	AdminCharacters(ctx context.Context, token string) ([]models.Character, error)
	SaveCharacter(ctx context.Context, token string, c models.Character) (*models.Character, error)
	DeleteCharacter(ctx context.Context, token string, id int64) error
	BatchCharacters(ctx context.Context, token string, cs []models.Character) error

	LLMSetting(ctx context.Context, token string) (*models.LLMSetting, error)
	SaveLLMSetting(ctx context.Context, token string, s models.LLMSetting) error
	TestLLM(ctx context.Context, token string) (string, error)
	LLMAPIs(ctx context.Context, token string) ([]models.LLMAPIConfig, error)
	CreateLLMAPI(ctx context.Context, token string, c models.LLMAPIConfig) (*models.LLMAPIConfig, error)
	UpdateLLMAPI(ctx context.Context, token string, id int64, c models.LLMAPIConfig) (*models.LLMAPIConfig, error)
	DeleteLLMAPI(ctx context.Context, token string, id int64) error
	ResetLLMAPITokens(ctx context.Context, token string, id int64) (*models.LLMAPIConfig, error)
	TestLLMAPI(ctx context.Context, token string, id int64) (string, error)

	Usage(ctx context.Context, token string) (*models.Usage, error)
	SetGlobalLimit(ctx context.Context, token string, limit int64) error
	SetUserLimit(ctx context.Context, token string, userID int64, limit *int64) error

	SMTPConfigs(ctx context.Context, token string) ([]models.SMTPConfig, error)
	CreateSMTPConfig(ctx context.Context, token string, c models.SMTPConfig) (*models.SMTPConfig, error)
	UpdateSMTPConfig(ctx context.Context, token string, id int64, c models.SMTPConfig) (*models.SMTPConfig, error)
	DeleteSMTPConfig(ctx context.Context, token string, id int64) error
	TestSMTPConfig(ctx context.Context, token string, id int64, toEmail string) error
	EmailLogs(ctx context.Context, token string, q EmailLogQuery) (*models.Page[models.EmailSendLog], error)
	DecryptEmailCode(ctx context.Context, token string, logID int64) (string, error)
	EmailIPStats(ctx context.Context, token string, q IPStatsQuery) (*models.Page[models.EmailIPStats], error)
	BanIP(ctx context.Context, token string, ban models.EmailIPBan) (*models.EmailIPBan, error)
	UnbanIP(ctx context.Context, token string, ip string) error
}

var (
	_ Client      = (*HTTPClient)(nil)
	_ AdminClient = (*HTTPClient)(nil)
)
