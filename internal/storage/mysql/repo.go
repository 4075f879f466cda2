package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"hotel_residents/internal/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Repo is a contact directory stored in MySQL.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate applies the embedded schema files in name order. Every file is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, n := range names {
		b, err := migrations.ReadFile(n)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("migrate %s: %w", n, err)
		}
	}
	return nil
}

func (r *Repo) CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	_, err := r.db.ExecContext(ctx, insertContactSQL,
		c.ResidentID,
		c.Surname,
		c.Name,
		c.Number,
		c.Email,
	)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

// GetContacts returns domain.ErrNotFound when the resident has no rows.
func (r *Repo) GetContacts(ctx context.Context, residentID int64) ([]domain.Contact, error) {
	out, err := r.query(ctx, selectContactsByResidentSQL, residentID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *Repo) GetAllContacts(ctx context.Context) ([]domain.Contact, error) {
	return r.query(ctx, selectAllContactsSQL)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ResidentID, &c.Surname, &c.Name, &c.Number, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
