package filestore

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
)

// dirHealth reports the data directory as healthy while it is a readable
// directory.
type dirHealth struct{ dir string }

func (h dirHealth) Ping(context.Context) error {
	fi, err := os.Stat(h.dir)
	if err != nil {
		return errors.Wrap(err, "stat data dir")
	}
	if !fi.IsDir() {
		return errors.Errorf("%s is not a directory", h.dir)
	}
	return nil
}

// Open creates dir when needed and returns file-backed stores rooted there.
func Open(dir string) (repository.Stores, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return repository.Stores{}, errors.Wrap(err, "create data dir")
	}
	return repository.Stores{
		Users: &Users{file: newJSONFile(dir, "users.json", func() []model.User { return []model.User{} })},
		Carts: &Carts{file: newJSONFile(dir, "carts.json", func() map[string]json.RawMessage {
			return map[string]json.RawMessage{}
		})},
		Orders:   &Orders{file: newJSONFile(dir, "orders.json", func() []model.Order { return []model.Order{} })},
		Contacts: &Contacts{file: newJSONFile(dir, "contact.json", func() []model.ContactMessage { return []model.ContactMessage{} })},
		Health:   dirHealth{dir: dir},
	}, nil
}
