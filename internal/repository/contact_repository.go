package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/iliyamo/geobites/internal/model"
)

// ContactRepo is the `contacts` table.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

func (r *ContactRepo) Create(ctx context.Context, m model.ContactMessage) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO contacts (id, name, subject, email, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Subject, m.Email, m.Description, m.CreatedAt)
	return errors.Wrap(err, "insert contact")
}

// ListAll returns every message, newest first.
func (r *ContactRepo) ListAll(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, subject, email, description, created_at
		 FROM contacts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "select contacts")
	}
	defer rows.Close()

	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		var desc sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.Subject, &m.Email, &desc, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan contact")
		}
		m.Description = desc.String
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "iterate contacts")
}

// Delete removes the message with the given id; ErrNotFound when no row
// matched.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "delete contact")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete contact")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
