package services

import (
	"context"
	"fmt"

	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/models"
	"github.com/samterminal/samclient/internal/common"
	"github.com/samterminal/samclient/internal/filex"
)

// AdminService forwards administration calls with the stored ADMIN
// session's token. A player session gets common.ErrForbidden.
type AdminService interface {
	Domains(ctx context.Context) ([]models.AdminDomain, error)
	SaveDomain(ctx context.Context, d models.AdminDomain) (*models.AdminDomain, error)
	DeleteDomain(ctx context.Context, id int64) error

	Locations(ctx context.Context) ([]models.AdminLocation, error)
	SaveLocation(ctx context.Context, l models.AdminLocation) (*models.AdminLocation, error)
	DeleteLocation(ctx context.Context, id int64) error

	Characters(ctx context.Context) ([]models.Character, error)
	SaveCharacter(ctx context.Context, c models.Character) (*models.Character, error)
	DeleteCharacter(ctx context.Context, id int64) error

	Usage(ctx context.Context) (*models.Usage, error)
	SetUserLimit(ctx context.Context, userID int64, limit *int64) error

	// UploadImage reads path from disk and uploads it, returning the
	// absolute image URL.
	UploadImage(ctx context.Context, path string) (*models.UploadResult, error)
}

type adminService struct {
	admin    client.AdminClient
	uploader client.Client
	auth     AuthService
}

func NewAdminService(admin client.AdminClient, uploader client.Client, auth AuthService) AdminService {
	return &adminService{admin: admin, uploader: uploader, auth: auth}
}

func (a *adminService) token(ctx context.Context) (string, error) {
	s, err := a.auth.Current(ctx)
	if err != nil {
		return "", err
	}
	if !s.IsAdmin() {
		return "", common.ErrForbidden
	}
	return s.Token, nil
}

func (a *adminService) Domains(ctx context.Context) ([]models.AdminDomain, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.AdminDomains(ctx, tok)
}

func (a *adminService) SaveDomain(ctx context.Context, d models.AdminDomain) (*models.AdminDomain, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.SaveDomain(ctx, tok, d)
}

func (a *adminService) DeleteDomain(ctx context.Context, id int64) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.admin.DeleteDomain(ctx, tok, id)
}

func (a *adminService) Locations(ctx context.Context) ([]models.AdminLocation, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.AdminLocations(ctx, tok)
}

func (a *adminService) SaveLocation(ctx context.Context, l models.AdminLocation) (*models.AdminLocation, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.SaveLocation(ctx, tok, l)
}

func (a *adminService) DeleteLocation(ctx context.Context, id int64) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.admin.DeleteLocation(ctx, tok, id)
}

func (a *adminService) Characters(ctx context.Context) ([]models.Character, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.AdminCharacters(ctx, tok)
}

func (a *adminService) SaveCharacter(ctx context.Context, c models.Character) (*models.Character, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.SaveCharacter(ctx, tok, c)
}

func (a *adminService) DeleteCharacter(ctx context.Context, id int64) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.admin.DeleteCharacter(ctx, tok, id)
}

func (a *adminService) Usage(ctx context.Context) (*models.Usage, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.admin.Usage(ctx, tok)
}

func (a *adminService) SetUserLimit(ctx context.Context, userID int64, limit *int64) error {
	tok, err := a.token(ctx)
	if err != nil {
		return err
	}
	return a.admin.SetUserLimit(ctx, tok, userID, limit)
}

func (a *adminService) UploadImage(ctx context.Context, path string) (*models.UploadResult, error) {
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	up, err := filex.ReadUpload(path, filex.MaxUploadSize)
	if err != nil {
		return nil, fmt.Errorf("read upload error: %w", err)
	}
	res, err := a.uploader.UploadImage(ctx, tok, up.Name, up.Data)
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}
	return res, nil
}
