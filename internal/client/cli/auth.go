package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/samterminal/samclient/internal/client/models"
	"github.com/samterminal/samclient/internal/client/session"
	"github.com/samterminal/samclient/internal/common"
)

var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readCredentials prompts for a username, offering the last one used,
// and a password. The caller wipes the password.
func (a *App) readCredentials(ctx context.Context) (string, []byte, error) {
	last, _ := a.auth.LastUsername(ctx)

	prompt := "Enter username"
	if last != "" {
		prompt = fmt.Sprintf("Enter username [%s]", last)
	}
	username, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", nil, err
	}
	if username == "" {
		username = last
	}
	if username == "" {
		return "", nil, errors.New("username is required")
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}

func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, a.auth.Login)
}

func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, a.auth.AdminLogin)
}

func (a *App) login(ctx context.Context, fn func(context.Context, string, []byte) (*session.Session, error)) error {
	username, password, err := a.readCredentials(ctx)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := fn(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", s.Username, s.Role)
	return a.bootstrap(ctx)
}

// Register creates an account. With an email address the account is
// verified by a one-time code first.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	if username == "" {
		return errors.New("username is required")
	}

	email, err := getSimpleText(a.reader, "Enter email (leave empty to skip verification)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var s *session.Session
	if email == "" {
		s, err = a.auth.Register(ctx, username, password, "")
	} else {
		s, err = a.registerWithEmail(ctx, username, email, password)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s.\n", s.Username)
	return a.bootstrap(ctx)
}

func (a *App) registerWithEmail(ctx context.Context, username, email string, password []byte) (*session.Session, error) {
	sent, err := a.auth.SendEmailCode(ctx, username, email, "")
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Verification code sent to %s", email)
	if sent.ExpiresAt != nil {
		msg += fmt.Sprintf(", expires %s", humanize.Time(*sent.ExpiresAt))
	}
	fmt.Fprintln(a.out, msg+".")

	code, err := getSimpleText(a.reader, "Enter verification code", a.out)
	if err != nil {
		return nil, err
	}

	verified, err := a.auth.VerifyEmailCode(ctx, sent.RequestID, email, code)
	if err != nil {
		return nil, err
	}
	if !verified.Verified {
		if verified.AttemptsRemaining != nil {
			return nil, fmt.Errorf("verification code rejected, %d attempts left", *verified.AttemptsRemaining)
		}
		return nil, errors.New("verification code rejected")
	}

	return a.auth.RegisterWithEmailCode(ctx, models.RegisterRequest{
		Username:       username,
		Password:       string(password),
		Email:          email,
		EmailCode:      code,
		EmailRequestID: sent.RequestID,
	})
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
