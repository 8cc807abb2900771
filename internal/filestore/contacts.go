package filestore

import (
	"context"
	"sort"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
)

// Contacts is contact.json.
type Contacts struct {
	file *jsonFile[[]model.ContactMessage]
}

func (s *Contacts) Create(_ context.Context, m model.ContactMessage) error {
	return s.file.update(func(msgs []model.ContactMessage) ([]model.ContactMessage, error) {
		return append(msgs, m), nil
	})
}

// ListAll returns every message, newest first.
func (s *Contacts) ListAll(_ context.Context) ([]model.ContactMessage, error) {
	msgs, err := s.file.read()
	if err != nil {
		return nil, err
	}
	out := make([]model.ContactMessage, len(msgs))
	for i := range msgs {
		out[len(msgs)-1-i] = msgs[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes the message with the given id and leaves every other
// message untouched.
func (s *Contacts) Delete(_ context.Context, id string) error {
	return s.file.update(func(msgs []model.ContactMessage) ([]model.ContactMessage, error) {
		kept := make([]model.ContactMessage, 0, len(msgs))
		for _, m := range msgs {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(msgs) {
			return nil, repository.ErrNotFound
		}
		return kept, nil
	})
}
