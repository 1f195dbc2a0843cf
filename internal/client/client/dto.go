package client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/samterminal/samclient/internal/timex"
)

// flexID accepts a JSON string or number; the backend mixes both for ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// flexTime accepts the timestamp shapes timex.ParseTimestamp knows.
// Unparsable or null values leave it nil.
type flexTime struct {
	t *time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		f.t = nil
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	if t, err := timex.ParseTimestamp(raw); err == nil {
		f.t = &t
	}
	return nil
}

func (f flexTime) ptr() *time.Time {
	return f.t
}

type errorBody struct {
	Error             string   `json:"error"`
	Code              string   `json:"code"`
	ResendAvailableAt flexTime `json:"resendAvailableAt"`
}

type credentialsRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email,omitempty"`
	EmailCode      string `json:"emailCode,omitempty"`
	EmailRequestID string `json:"emailRequestId,omitempty"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type emailCodeSendRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	AltchaPayload string `json:"altchaPayload"`
}

type emailCodeSendResponse struct {
	RequestID         string   `json:"requestId"`
	ResendAvailableAt flexTime `json:"resendAvailableAt"`
	ExpiresAt         flexTime `json:"expiresAt"`
	SendStatus        string   `json:"sendStatus"`
}

type emailCodeVerifyRequest struct {
	EmailRequestID string `json:"emailRequestId"`
	Email          string `json:"email"`
	EmailCode      string `json:"emailCode"`
}

type emailCodeVerifyResponse struct {
	Verified          bool     `json:"verified"`
	ExpiresAt         flexTime `json:"expiresAt"`
	AttemptsRemaining *int     `json:"attemptsRemaining"`
}

type emailSendStatusResponse struct {
	Status    string `json:"status"`
	LastError string `json:"lastError"`
}

type itemDTO struct {
	ID          flexID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Quantity    int    `json:"quantity"`
}

type memoryDTO struct {
	ID      flexID   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
}

type gameStateDTO struct {
	CurrentLocation      string      `json:"currentLocation"`
	CurrentLocationName  string      `json:"currentLocationName"`
	LocationDynamicState string      `json:"locationDynamicState"`
	FireflyEmotion       string      `json:"fireflyEmotion"`
	FireflyStatus        string      `json:"fireflyStatus"`
	FireflyMoodDetails   string      `json:"fireflyMoodDetails"`
	GameTime             string      `json:"gameTime"`
	Items                []itemDTO   `json:"items"`
	Memories             []memoryDTO `json:"memories"`
	UserName             string      `json:"userName"`
}

type chatMessageDTO struct {
	ID        flexID   `json:"id"`
	Sender    string   `json:"sender"`
	NPCName   string   `json:"npcName"`
	Content   string   `json:"content"`
	Narration string   `json:"narration"`
	Timestamp flexTime `json:"timestamp"`
}

type stateUpdateDTO struct {
	Location *struct {
		ID            flexID `json:"id"`
		Name          string `json:"name"`
		BackgroundURL string `json:"backgroundUrl"`
	} `json:"location"`
	Firefly *struct {
		Emotion string `json:"emotion"`
		Status  string `json:"status"`
	} `json:"firefly"`
	InventoryChange *struct {
		ItemID flexID `json:"itemId"`
		Delta  int    `json:"delta"`
	} `json:"inventoryChange"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type recallRequest struct {
	MemoryID  string `json:"memoryId"`
	SessionID string `json:"sessionId,omitempty"`
}

type chatResponse struct {
	Messages    []chatMessageDTO `json:"messages"`
	State       *gameStateDTO    `json:"state"`
	StateUpdate *stateUpdateDTO  `json:"stateUpdate"`
	SessionID   string           `json:"sessionId"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type starDomainDTO struct {
	ID          flexID  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Color       string  `json:"color"`
}

type locationDTO struct {
	ID              flexID  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	BackgroundStyle string  `json:"backgroundStyle"`
	BackgroundURL   string  `json:"backgroundUrl"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Unlocked        bool    `json:"unlocked"`
	DomainID        flexID  `json:"domainId"`
}

type mapResponse struct {
	Domains   []starDomainDTO `json:"domains"`
	Locations []locationDTO   `json:"locations"`
}

type fireflyAssetDTO struct {
	Emotion string `json:"emotion"`
	URL     string `json:"url"`
}

type fireflyAssetsRequest struct {
	Assets map[string]string `json:"assets"`
}

// uploadResponse is open-ended; only "url" has a known meaning.
type uploadResponse map[string]any

type characterDTO struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatarUrl"`
}

type adminDomainDTO struct {
	ID            int64   `json:"id,omitempty"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	AIDescription string  `json:"aiDescription"`
	CoordX        float64 `json:"coordX"`
	CoordY        float64 `json:"coordY"`
	Color         string  `json:"color"`
}

type adminLocationDTO struct {
	ID              int64   `json:"id,omitempty"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	AIDescription   string  `json:"aiDescription"`
	BackgroundStyle string  `json:"backgroundStyle"`
	BackgroundURL   string  `json:"backgroundUrl"`
	CoordX          float64 `json:"coordX"`
	CoordY          float64 `json:"coordY"`
	Unlocked        bool    `json:"unlocked"`
	DomainCode      string  `json:"domainCode"`
}

type llmSettingDTO struct {
	BaseURL     string   `json:"baseUrl"`
	ModelName   string   `json:"modelName"`
	Temperature *float64 `json:"temperature"`
	APIKey      string   `json:"apiKey,omitempty"`
}

type llmAPIConfigRequest struct {
	Name        string   `json:"name"`
	BaseURL     string   `json:"baseUrl"`
	APIKey      string   `json:"apiKey,omitempty"`
	ModelName   string   `json:"modelName"`
	Temperature *float64 `json:"temperature,omitempty"`
	Role        string   `json:"role,omitempty"`
	TokenLimit  *int64   `json:"tokenLimit,omitempty"`
	MaxLoad     *int     `json:"maxLoad,omitempty"`
	Status      string   `json:"status,omitempty"`
}

type llmAPIConfigResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	BaseURL         string   `json:"baseUrl"`
	APIKey          string   `json:"apiKey"`
	ModelName       string   `json:"modelName"`
	Temperature     *float64 `json:"temperature"`
	Role            string   `json:"role"`
	TokenLimit      *int64   `json:"tokenLimit"`
	TokenUsed       int64    `json:"tokenUsed"`
	Status          string   `json:"status"`
	FailureCount    int      `json:"failureCount"`
	LastFailureAt   flexTime `json:"lastFailureAt"`
	LastSuccessAt   flexTime `json:"lastSuccessAt"`
	CircuitOpenedAt flexTime `json:"circuitOpenedAt"`
	MaxLoad         *int     `json:"maxLoad"`
	CurrentLoad     int      `json:"currentLoad"`
	CreatedAt       flexTime `json:"createdAt"`
	UpdatedAt       flexTime `json:"updatedAt"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type userUsageDTO struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	InputTokens  int64  `json:"inputTokens"`
	OutputTokens int64  `json:"outputTokens"`
	CustomLimit  *int64 `json:"customLimit"`
}

type usageResponse struct {
	GlobalLimit *int64         `json:"globalLimit"`
	Users       []userUsageDTO `json:"users"`
}

type limitRequest struct {
	Limit *int64 `json:"limit"`
}

type smtpConfigRequest struct {
	Name         string `json:"name"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password,omitempty"`
	FromAddress  string `json:"fromAddress"`
	UseTLS       bool   `json:"useTls"`
	UseSSL       bool   `json:"useSsl"`
	Enabled      bool   `json:"enabled"`
	MaxPerMinute *int   `json:"maxPerMinute,omitempty"`
	MaxPerDay    *int   `json:"maxPerDay,omitempty"`
}

type smtpConfigResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Host            string   `json:"host"`
	Port            int      `json:"port"`
	Username        string   `json:"username"`
	FromAddress     string   `json:"fromAddress"`
	UseTLS          bool     `json:"useTls"`
	UseSSL          bool     `json:"useSsl"`
	Enabled         bool     `json:"enabled"`
	MaxPerMinute    *int     `json:"maxPerMinute"`
	MaxPerDay       *int     `json:"maxPerDay"`
	FailureCount    int      `json:"failureCount"`
	LastFailureAt   flexTime `json:"lastFailureAt"`
	LastSuccessAt   flexTime `json:"lastSuccessAt"`
	CircuitOpenedAt flexTime `json:"circuitOpenedAt"`
	HasPassword     bool     `json:"hasPassword"`
	Status          string   `json:"status"`
}

type smtpTestRequest struct {
	ToEmail string `json:"toEmail"`
}

type emailSendLogDTO struct {
	ID         int64    `json:"id"`
	Username   string   `json:"username"`
	IP         string   `json:"ip"`
	Email      string   `json:"email"`
	CodeMasked string   `json:"codeMasked"`
	SentAt     flexTime `json:"sentAt"`
	SMTPID     *int64   `json:"smtpId"`
	Status     string   `json:"status"`
}

type emailIPStatsDTO struct {
	IP              string   `json:"ip"`
	RequestedToday  int      `json:"requestedToday"`
	UnverifiedToday int      `json:"unverifiedToday"`
	RequestedTotal  int      `json:"requestedTotal"`
	UnverifiedTotal int      `json:"unverifiedTotal"`
	BanStatus       string   `json:"banStatus"`
	BannedUntil     flexTime `json:"bannedUntil"`
}

type emailIPBanRequest struct {
	IP          string `json:"ip"`
	BannedUntil string `json:"bannedUntil,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type emailIPBanResponse struct {
	IP          string   `json:"ip"`
	Type        string   `json:"type"`
	BannedUntil flexTime `json:"bannedUntil"`
	Reason      string   `json:"reason"`
}

type decryptResponse struct {
	Code string `json:"code"`
}

type pageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
