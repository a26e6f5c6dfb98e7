package db

import (
	"context"

	"github.com/dailyvegies/api/internal/identity/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func (s *DB) UpdateAccountProfile(ctx context.Context, in entity.ProfileUpdate) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountProfile")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE accounts
		SET full_name = $2, mobile = $3, location = $4, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, in.AccountID, in.FullName, in.Mobile, in.Location)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) UpdateAccountPassword(ctx context.Context, id int64, password string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountPassword")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts SET password = $2, updated_at = now() WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, password)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// UpdateAccountStatus is conditional on the current status so concurrent
// transitions cannot both apply.
func (s *DB) UpdateAccountStatus(ctx context.Context, id int64, oldStatus, newStatus entity.AccountStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAccountStatus")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE accounts SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`

	tag, err := s.conn.Exec(ctx, query, id, oldStatus, newStatus)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
