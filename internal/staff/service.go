package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sobnin/sobnin-backend/pkg/auth"
	"github.com/sobnin/sobnin-backend/pkg/config"
	pkgerrors "github.com/sobnin/sobnin-backend/pkg/errors"
	"github.com/sobnin/sobnin-backend/pkg/security"
)

// LoginResult carries the signed token and display fields for the back office.
type LoginResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service authenticates back-office staff. There is no registration flow;
// accounts are provisioned out of band.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type service struct {
	repo Repository
	jwt  config.JWTConfig
	now  func() time.Time
}

// NewService builds a staff auth service.
func NewService(repo Repository, jwt config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	return &service{repo: repo, jwt: jwt, now: time.Now}, nil
}

// Login verifies credentials and mints a staff JWT. Unknown email and wrong
// password collapse into the same error so the endpoint does not leak which
// accounts exist.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load staff account")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintStaffToken(s.jwt, s.now(), user.ID, user.Email, user.Name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &LoginResult{Token: token, Name: user.Name, Email: user.Email}, nil
}
