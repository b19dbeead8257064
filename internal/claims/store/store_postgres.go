package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"claims/internal/claims/models"
	"claims/pkg/platform/sentinel"
	txcontext "claims/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists claims in the claims table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const claimColumns = `id, cover_id, created, name, claim_type, damage_cost`

func (s *PostgresStore) List(ctx context.Context) ([]*models.Claim, error) {
	return s.query(ctx, `SELECT `+claimColumns+` FROM claims ORDER BY created, id`)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Claim, error) {
	row := txcontext.Execer(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE id = $1`, id)
	c, err := scanClaim(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return c, err
}

func (s *PostgresStore) Create(ctx context.Context, claim *models.Claim) error {
	_, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `
		INSERT INTO claims (id, cover_id, created, name, claim_type, damage_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, claim.ID, claim.CoverID, claim.Created, claim.Name, claim.Type.String(), claim.DamageCost)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := txcontext.Execer(ctx, s.db).ExecContext(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete claim: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Claim, error) {
	rows, err := txcontext.Execer(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaim(row rowScanner) (*models.Claim, error) {
	var (
		c        models.Claim
		typeName string
	)
	if err := row.Scan(&c.ID, &c.CoverID, &c.Created, &c.Name, &typeName, &c.DamageCost); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan claim: %w", err)
	}
	claimType, err := models.ParseClaimType(typeName)
	if err != nil {
		return nil, fmt.Errorf("scan claim %s: %w", c.ID, err)
	}
	c.Type = claimType
	return &c, nil
}
