package models

import "time"

type Character struct {
	ID          int64
	Name        string
	Role        string
	Prompt      string
	Description string
	AvatarURL   string
}

type AdminDomain struct {
	ID            int64
	Code          string
	Name          string
	Description   string
	AIDescription string
	CoordX        float64
	CoordY        float64
	Color         string
}

type AdminLocation struct {
	ID              int64
	Code            string
	Name            string
	Description     string
	AIDescription   string
	BackgroundStyle string
	BackgroundURL   string
	CoordX          float64
	CoordY          float64
	Unlocked        bool
	DomainCode      string
}

type LLMSetting struct {
	BaseURL     string
	ModelName   string
	Temperature *float64
	APIKey      string
}

type LLMAPIConfig struct {
	ID              int64
	Name            string
	BaseURL         string
	APIKey          string
	ModelName       string
	Temperature     *float64
	Role            string
	TokenLimit      *int64
	TokenUsed       int64
	Status          string
	FailureCount    int
	LastFailureAt   *time.Time
	LastSuccessAt   *time.Time
	CircuitOpenedAt *time.Time
	MaxLoad         *int
	CurrentLoad     int
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
}

type UserUsage struct {
	ID           int64
	Username     string
	InputTokens  int64
	OutputTokens int64
	CustomLimit  *int64
}

// Usage is the admin token-usage overview.
type Usage struct {
	GlobalLimit *int64
	Users       []UserUsage
}

type SMTPConfig struct {
	ID              int64
	Name            string
	Host            string
	Port            int
	Username        string
	Password        string
	FromAddress     string
	UseTLS          bool
	UseSSL          bool
	Enabled         bool
	MaxPerMinute    *int
	MaxPerDay       *int
	FailureCount    int
	LastFailureAt   *time.Time
	LastSuccessAt   *time.Time
	CircuitOpenedAt *time.Time
	HasPassword     bool
	Status          string
}

type EmailSendLog struct {
	ID         int64
	Username   string
	IP         string
	Email      string
	CodeMasked string
	SentAt     *time.Time
	SMTPID     *int64
	Status     string
}

type EmailIPStats struct {
	IP              string
	RequestedToday  int
	UnverifiedToday int
	RequestedTotal  int
	UnverifiedTotal int
	BanStatus       string
	BannedUntil     *time.Time
}

type EmailIPBan struct {
	IP          string
	Type        string
	BannedUntil *time.Time
	Reason      string
}

// Page is one page of a server-side paginated listing.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// UploadResult is the stored location of an uploaded image. Fields holds
// whatever else the backend put in the response, keyed by JSON name.
type UploadResult struct {
	URL    string
	Fields map[string]any
}
