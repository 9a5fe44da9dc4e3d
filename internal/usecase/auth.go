package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
	pkgAuth "github.com/polkiloo/freightdesk/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a shipper or carrier account and returns an auth token.
// Admin accounts are only created through EnsureAdmin.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if role != model.RoleShipper && role != model.RoleCarrier {
		return nil, "", fmt.Errorf("%w: cannot self-register as %q", domainErrors.ErrForbidden, role)
	}
	if err := pkgAuth.ValidatePassword(password); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domainErrors.ErrInvalidInput, err)
	}

	usr, err := u.create(ctx, login, password, role)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken returns the caller encoded in token.
func (u *AuthUseCase) ParseToken(token string) (Actor, error) {
	if token == "" {
		return Actor{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

// EnsureAdmin creates the admin account unless it exists. An existing
// non-admin account with the same login is an error.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	existing, err := u.users.GetByLogin(ctx, login)
	switch {
	case err == nil:
		if existing.Role != model.RoleAdmin {
			return nil, fmt.Errorf("%w: login %q belongs to a %s", domainErrors.ErrConflict, login, existing.Role)
		}
		return existing, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}

	usr, err := u.create(ctx, login, password, model.RoleAdmin)
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		// another replica seeded it first
		return u.users.GetByLogin(ctx, login)
	}
	return usr, err
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

func (u *AuthUseCase) create(ctx context.Context, login, password string, role model.Role) (*model.User, error) {
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return u.users.Create(ctx, login, hash, role)
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: usr.Role})
}
