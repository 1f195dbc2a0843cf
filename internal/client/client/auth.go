package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/samterminal/samclient/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	return c.authenticate(ctx, ErrLoginFailed, "/api/auth/login", credentialsRequest{Username: username, Password: password})
}

// AdminLogin authenticates against the admin endpoint; non-admin
// accounts are refused with 403.
func (c *HTTPClient) AdminLogin(ctx context.Context, username, password string) (*models.AuthResult, error) {
	return c.authenticate(ctx, ErrAdminLoginFailed, "/api/admin/login", credentialsRequest{Username: username, Password: password})
}

// Register creates an account. EmailCode and EmailRequestID are only sent
// when the backend requires email verification.
func (c *HTTPClient) Register(ctx context.Context, r models.RegisterRequest) (*models.AuthResult, error) {
	return c.authenticate(ctx, ErrRegisterFailed, "/api/auth/register", credentialsRequest{
		Username:       r.Username,
		Password:       r.Password,
		Email:          r.Email,
		EmailCode:      r.EmailCode,
		EmailRequestID: r.EmailRequestID,
	})
}

func (c *HTTPClient) authenticate(ctx context.Context, kind error, path string, in credentialsRequest) (*models.AuthResult, error) {
	var out authResponse
	if err := c.doJSON(ctx, kind, http.MethodPost, path, "", in, &out); err != nil {
		return nil, err
	}
	return mapAuth(&out), nil
}

// SendRegisterEmailCode asks the backend to mail a verification code.
// When refused because of the resend interval the returned *OpError has
// Code CodeResendNotReady and ResendAvailableAt set; see ResendNotReady.
func (c *HTTPClient) SendRegisterEmailCode(ctx context.Context, username, email, altchaPayload string) (*models.EmailCodeSent, error) {
	var out emailCodeSendResponse
	in := emailCodeSendRequest{Username: username, Email: email, AltchaPayload: altchaPayload}
	if err := c.doJSON(ctx, ErrSendEmailCodeFailed, http.MethodPost, "/api/auth/register/email-code/send", "", in, &out); err != nil {
		return nil, err
	}
	return &models.EmailCodeSent{
		RequestID:         out.RequestID,
		ResendAvailableAt: out.ResendAvailableAt.ptr(),
		ExpiresAt:         out.ExpiresAt.ptr(),
		SendStatus:        out.SendStatus,
	}, nil
}

func (c *HTTPClient) VerifyRegisterEmailCode(ctx context.Context, requestID, email, code string) (*models.EmailCodeVerified, error) {
	var out emailCodeVerifyResponse
	in := emailCodeVerifyRequest{EmailRequestID: requestID, Email: email, EmailCode: code}
	if err := c.doJSON(ctx, ErrVerifyEmailFailed, http.MethodPost, "/api/auth/register/email-code/verify", "", in, &out); err != nil {
		return nil, err
	}
	return &models.EmailCodeVerified{
		Verified:          out.Verified,
		ExpiresAt:         out.ExpiresAt.ptr(),
		AttemptsRemaining: out.AttemptsRemaining,
	}, nil
}

func (c *HTTPClient) EmailSendStatus(ctx context.Context, requestID string) (*models.EmailSendStatus, error) {
	var out emailSendStatusResponse
	path := withQuery("/api/auth/register/email-code/send-status", url.Values{"requestId": {requestID}})
	if err := c.doJSON(ctx, ErrSendStatusFailed, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &models.EmailSendStatus{Status: out.Status, LastError: out.LastError}, nil
}
