package db

import (
	"context"

	"github.com/dailyvegies/api/internal/identity/entity"
)

const accountColumns = `id, email, full_name, mobile, location, role, status, password, created_at, updated_at`

func (s *DB) scanAccount(row interface{ Scan(dest ...any) error }) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.FullName, &a.Mobile, &a.Location,
		&a.Role, &a.Status, &a.Password, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	account, err := s.scanAccount(s.conn.QueryRow(ctx, query, email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}

func (s *DB) GetAccountByMobile(ctx context.Context, mobile string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByMobile")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE mobile = $1`
	account, err := s.scanAccount(s.conn.QueryRow(ctx, query, mobile))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := s.scanAccount(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return account, nil
}

func (s *DB) GetAccountsByStatus(ctx context.Context, status entity.AccountStatus) (_ []entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountsByStatus")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE status = $1 ORDER BY created_at ASC`
	rows, err := s.conn.Query(ctx, query, status)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	accounts := make([]entity.Account, 0)
	for rows.Next() {
		account, err := s.scanAccount(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		accounts = append(accounts, *account)
	}

	return accounts, s.mapError(rows.Err())
}
