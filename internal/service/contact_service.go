package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
)

// ContactService is the contact mailbox.
type ContactService struct {
	store repository.ContactStore
	now   func() time.Time
	newID func() string
}

func NewContactService(store repository.ContactStore) *ContactService {
	return &ContactService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Submit stores a message unless every field is blank.  Values are stored
// trimmed.
func (s *ContactService) Submit(ctx context.Context, name, subject, email, description string) (string, error) {
	m := model.ContactMessage{
		Name:        strings.TrimSpace(name),
		Subject:     strings.TrimSpace(subject),
		Email:       strings.TrimSpace(email),
		Description: strings.TrimSpace(description),
	}
	if m.Name == "" && m.Subject == "" && m.Email == "" && m.Description == "" {
		return "", ErrEmptyMessage
	}
	m.ID = s.newID()
	m.CreatedAt = s.now()
	if err := s.store.Create(ctx, m); err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *ContactService) ListAll(ctx context.Context) ([]model.ContactMessage, error) {
	return s.store.ListAll(ctx)
}

// Delete removes one message; repository.ErrNotFound when the id is unknown.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
