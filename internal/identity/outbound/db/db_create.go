package db

import (
	"context"

	"github.com/dailyvegies/api/internal/identity/entity"
)

func (s *DB) CreateAccount(ctx context.Context, in entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO accounts (id, email, full_name, mobile, location, role, status, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = s.conn.Exec(ctx, query,
		in.ID, in.Email, in.FullName, in.Mobile, in.Location,
		in.Role, in.Status, in.Password, in.CreatedAt, in.UpdatedAt,
	)

	err = s.mapError(err)
	return err
}
