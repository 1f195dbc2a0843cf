// Package services contains the application services behind the CLI.
// This file defines the authentication service: login (player and
// admin), registration with or without email verification, and the
// persisted session that every other service takes its token from.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/models"
	"github.com/samterminal/samclient/internal/client/session"
	"github.com/samterminal/samclient/internal/common"
	"github.com/samterminal/samclient/internal/logging"
)

// SessionStore is the persistence the services need; *session.Store
// implements it.
type SessionStore interface {
	Save(ctx context.Context, s session.Session) error
	Load(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
	LastUsername(ctx context.Context) (string, error)
	SavedAt(ctx context.Context) (time.Time, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / AdminLogin / Register*: authenticate against the backend and
//     persist the resulting session.
//   - SendEmailCode / VerifyEmailCode / EmailSendStatus: the email
//     verification steps that precede RegisterWithEmailCode.
//   - Current: the stored session, or common.ErrNotLoggedIn /
//     common.ErrTokenExpired.
//   - SessionSavedAt: when the stored session was last written.
//   - Logout: forget the stored session.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (*session.Session, error)
	AdminLogin(ctx context.Context, username string, password []byte) (*session.Session, error)
	Register(ctx context.Context, username string, password []byte, email string) (*session.Session, error)
	SendEmailCode(ctx context.Context, username, email, altchaPayload string) (*models.EmailCodeSent, error)
	VerifyEmailCode(ctx context.Context, requestID, email, code string) (*models.EmailCodeVerified, error)
	RegisterWithEmailCode(ctx context.Context, req models.RegisterRequest) (*session.Session, error)
	EmailSendStatus(ctx context.Context, requestID string) (*models.EmailSendStatus, error)
	Current(ctx context.Context) (*session.Session, error)
	LastUsername(ctx context.Context) (string, error)
	SessionSavedAt(ctx context.Context) (time.Time, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions SessionStore
	log      logging.Logger
	now      func() time.Time
}

func NewAuthService(c client.Client, sessions SessionStore, log logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, log: log, now: time.Now}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*session.Session, error) {
	res, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	return a.persist(ctx, res)
}

// AdminLogin refuses a successful login whose role is not ADMIN.
func (a *authService) AdminLogin(ctx context.Context, username string, password []byte) (*session.Session, error) {
	res, err := a.client.AdminLogin(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("admin login error: %w", err)
	}
	if res.Role != common.RoleAdmin {
		return nil, common.ErrForbidden
	}
	return a.persist(ctx, res)
}

func (a *authService) Register(ctx context.Context, username string, password []byte, email string) (*session.Session, error) {
	return a.RegisterWithEmailCode(ctx, models.RegisterRequest{
		Username: username,
		Password: string(password),
		Email:    email,
	})
}

func (a *authService) RegisterWithEmailCode(ctx context.Context, req models.RegisterRequest) (*session.Session, error) {
	res, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return a.persist(ctx, res)
}

func (a *authService) SendEmailCode(ctx context.Context, username, email, altchaPayload string) (*models.EmailCodeSent, error) {
	sent, err := a.client.SendRegisterEmailCode(ctx, username, email, altchaPayload)
	if err != nil {
		return nil, fmt.Errorf("send email code error: %w", err)
	}
	return sent, nil
}

func (a *authService) VerifyEmailCode(ctx context.Context, requestID, email, code string) (*models.EmailCodeVerified, error) {
	v, err := a.client.VerifyRegisterEmailCode(ctx, requestID, email, code)
	if err != nil {
		return nil, fmt.Errorf("verify email code error: %w", err)
	}
	return v, nil
}

func (a *authService) EmailSendStatus(ctx context.Context, requestID string) (*models.EmailSendStatus, error) {
	st, err := a.client.EmailSendStatus(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("send status error: %w", err)
	}
	return st, nil
}

// Current returns the stored session. An expired JWT is cleared and
// reported as common.ErrTokenExpired.
func (a *authService) Current(ctx context.Context) (*session.Session, error) {
	s, err := a.sessions.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, common.ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load session error: %w", err)
	}

	if s.Expired(a.now()) {
		a.log.Info(ctx, "stored session expired", "username", s.Username)
		if err := a.sessions.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear session error: %w", err)
		}
		return nil, common.ErrTokenExpired
	}
	return s, nil
}

func (a *authService) LastUsername(ctx context.Context) (string, error) {
	return a.sessions.LastUsername(ctx)
}

func (a *authService) SessionSavedAt(ctx context.Context) (time.Time, error) {
	at, err := a.sessions.SavedAt(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return time.Time{}, common.ErrNotLoggedIn
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load session error: %w", err)
	}
	return at, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) persist(ctx context.Context, res *models.AuthResult) (*session.Session, error) {
	s := session.Session{Token: res.Token, Username: res.Username, Role: res.Role}
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session error: %w", err)
	}
	a.log.Info(ctx, "logged in", "username", s.Username, "role", s.Role)
	return &s, nil
}
