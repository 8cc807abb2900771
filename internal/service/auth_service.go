package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
	"github.com/iliyamo/geobites/internal/utils"
)

// OwnerCredentials is the single configured operator login.
type OwnerCredentials struct {
	Email    string
	Password string
}

// AuthService signs customers up and resolves logins to identities.
type AuthService struct {
	users      repository.UserStore
	owner      OwnerCredentials
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users repository.UserStore, owner OwnerCredentials, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		owner:      owner,
		bcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Signup creates a customer account.  Duplicate emails return
// repository.ErrEmailExists.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (model.Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return model.Customer{}, ErrMissingSignup
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.Customer{}, errors.Wrap(err, "hash password")
	}
	u, err := s.users.Create(ctx, model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return model.Customer{}, err
	}
	return model.CustomerFromUser(u), nil
}

// Login checks the owner pair first, then the credential store.  Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Identity, error) {
	email = strings.TrimSpace(email)
	if s.owner.Email != "" && email == s.owner.Email && password == s.owner.Password {
		return model.Owner{OwnerEmail: s.owner.Email}, nil
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidLogin
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidLogin
	}
	return model.CustomerFromUser(u), nil
}
