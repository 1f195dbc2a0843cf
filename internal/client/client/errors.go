package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnavailable marks failures where no HTTP response was received.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized marks 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
)

// Operation kinds. Every *OpError matches exactly one of these with
// errors.Is, and its message is the kind's text.
var (
	ErrLoginFailed         = errors.New("login failed")
	ErrAdminLoginFailed    = errors.New("admin login failed")
	ErrRegisterFailed      = errors.New("registration failed")
	ErrSendEmailCodeFailed = errors.New("failed to send verification code")
	ErrVerifyEmailFailed   = errors.New("failed to verify code")
	ErrSendStatusFailed    = errors.New("failed to fetch send status")

	ErrStatusFailed        = errors.New("failed to fetch status")
	ErrChatFailed          = errors.New("failed to send message")
	ErrCreateSessionFailed = errors.New("failed to create session")
	ErrRecallFailed        = errors.New("memory recall failed")
	ErrMapFailed           = errors.New("failed to fetch map")
	ErrFireflyAssetsFailed = errors.New("failed to fetch firefly assets")
	ErrInventoryFailed     = errors.New("failed to fetch inventory")
	ErrMemoriesFailed      = errors.New("failed to fetch memories")
	ErrProgressFailed      = errors.New("failed to fetch progress")
	ErrUploadFailed        = errors.New("upload failed")

	ErrAdminAssetsFailed     = errors.New("failed to fetch firefly assets")
	ErrSaveAssetsFailed      = errors.New("failed to save firefly assets")
	ErrDomainsFailed         = errors.New("failed to fetch star domains")
	ErrSaveDomainFailed      = errors.New("failed to save star domain")
	ErrDeleteDomainFailed    = errors.New("failed to delete star domain")
	ErrBatchDomainsFailed    = errors.New("star domain batch import failed")
	ErrLocationsFailed       = errors.New("failed to fetch locations")
	ErrSaveLocationFailed    = errors.New("failed to save location")
	ErrDeleteLocationFailed  = errors.New("failed to delete location")
	ErrBatchLocationsFailed  = errors.New("location batch import failed")
	ErrCharactersFailed      = errors.New("failed to fetch characters")
	ErrSaveCharacterFailed   = errors.New("failed to save character")
	ErrDeleteCharacterFailed = errors.New("failed to delete character")
	ErrBatchCharactersFailed = errors.New("character batch import failed")

	ErrLLMSettingFailed     = errors.New("failed to fetch model settings")
	ErrSaveLLMSettingFailed = errors.New("failed to save model settings")
	ErrTestLLMFailed        = errors.New("model connection test failed")
	ErrLLMAPIsFailed        = errors.New("failed to fetch API pool")
	ErrCreateLLMAPIFailed   = errors.New("failed to create API entry")
	ErrUpdateLLMAPIFailed   = errors.New("failed to update API entry")
	ErrDeleteLLMAPIFailed   = errors.New("failed to delete API entry")
	ErrResetTokensFailed    = errors.New("failed to reset token usage")
	ErrTestLLMAPIFailed     = errors.New("API entry test failed")
	ErrUsageFailed          = errors.New("failed to fetch usage")
	ErrGlobalLimitFailed    = errors.New("failed to save global limit")
	ErrUserLimitFailed      = errors.New("failed to save user limit")

	ErrSMTPListFailed    = errors.New("failed to fetch SMTP servers")
	ErrSMTPCreateFailed  = errors.New("failed to create SMTP server")
	ErrSMTPUpdateFailed  = errors.New("failed to update SMTP server")
	ErrSMTPDeleteFailed  = errors.New("failed to delete SMTP server")
	ErrSMTPTestFailed    = errors.New("SMTP test send failed")
	ErrEmailLogsFailed   = errors.New("failed to fetch email logs")
	ErrDecryptCodeFailed = errors.New("failed to decrypt code")
	ErrIPStatsFailed     = errors.New("failed to fetch IP statistics")
	ErrBanIPFailed       = errors.New("failed to ban IP")
	ErrUnbanIPFailed     = errors.New("failed to unban IP")
)

// CodeResendNotReady is the backend code for a verification email
// requested before the resend interval elapsed.
const CodeResendNotReady = "RESEND_NOT_READY"

// OpError is returned by every gateway operation that did not succeed.
//
// Error() is the operation's message. Status is zero when no response
// arrived; Err then holds the transport failure and errors.Is(err,
// ErrUnavailable) holds.
type OpError struct {
	Kind   error
	Status int

	// ServerMessage and Code come from a JSON error body when present.
	ServerMessage string
	Code          string
	// ResendAvailableAt is set on verification-code failures that say
	// when another send is allowed.
	ResendAvailableAt *time.Time

	Err error
}

func (e *OpError) Error() string {
	return e.Kind.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func (e *OpError) Is(target error) bool {
	switch target {
	case e.Kind:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// Detail is the message with whatever the server or transport added.
func (e *OpError) Detail() string {
	switch {
	case e.ServerMessage != "" && e.Status != 0:
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Kind, e.ServerMessage, e.Status)
	case e.Status != 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

// ResendNotReady reports whether err is a verification-code send refused
// because of the resend interval, and when another attempt is allowed.
func ResendNotReady(err error) (time.Time, bool) {
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Code != CodeResendNotReady {
		return time.Time{}, false
	}
	if opErr.ResendAvailableAt == nil {
		return time.Time{}, true
	}
	return *opErr.ResendAvailableAt, true
}

// Describe renders err for a terminal user.
func Describe(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Detail()
	}
	return err.Error()
}
