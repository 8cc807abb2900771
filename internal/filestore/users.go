package filestore

import (
	"context"
	"strings"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
)

// Users is users.json: an array of accounts.
type Users struct {
	file *jsonFile[[]model.User]
}

func (s *Users) GetByEmail(_ context.Context, email string) (model.User, error) {
	users, err := s.file.read()
	if err != nil {
		return model.User{}, err
	}
	email = strings.TrimSpace(email)
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *Users) Create(_ context.Context, u model.User) (model.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	err := s.file.update(func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if existing.Email == u.Email {
				return nil, repository.ErrEmailExists
			}
		}
		return append(users, u), nil
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}
