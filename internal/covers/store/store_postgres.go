package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"claims/internal/covers/models"
	"claims/internal/pricing"
	"claims/pkg/platform/sentinel"
	txcontext "claims/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists covers in the covers table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const coverColumns = `id, start_date, end_date, cover_type, premium`

func (s *PostgresStore) List(ctx context.Context) ([]*models.Cover, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx,
		`SELECT `+coverColumns+` FROM covers ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list covers: %w", err)
	}
	defer rows.Close()

	var covers []*models.Cover
	for rows.Next() {
		c, err := scanCover(rows)
		if err != nil {
			return nil, err
		}
		covers = append(covers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate covers: %w", err)
	}
	return covers, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Cover, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+coverColumns+` FROM covers WHERE id = $1`, id)
	c, err := scanCover(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return c, err
}

func (s *PostgresStore) Create(ctx context.Context, cover *models.Cover) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO covers (id, start_date, end_date, cover_type, premium)
		VALUES ($1, $2, $3, $4, $5)
	`, cover.ID, cover.StartDate, cover.EndDate, cover.Type.String(), cover.Premium)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert cover: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `DELETE FROM covers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cover: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cover: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCover(row rowScanner) (*models.Cover, error) {
	var (
		c        models.Cover
		typeName string
	)
	if err := row.Scan(&c.ID, &c.StartDate, &c.EndDate, &typeName, &c.Premium); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan cover: %w", err)
	}
	coverType, err := pricing.ParseCoverType(typeName)
	if err != nil {
		return nil, fmt.Errorf("scan cover %s: %w", c.ID, err)
	}
	c.Type = coverType
	return &c, nil
}
