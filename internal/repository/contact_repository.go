package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-feed-api/internal/model"
)

// ContactRepo stores messages submitted through the public contact form.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

// Create inserts a contact message and populates its ID and CreatedAt.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (name, email, phone, subject, message) VALUES (?,?,?,?,?)",
		c.Name, c.Email, c.Phone, c.Subject, c.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM contacts WHERE id=?", c.ID).Scan(&c.CreatedAt)
}
