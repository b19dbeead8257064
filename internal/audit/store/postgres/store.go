package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"claims/internal/audit"
	txcontext "claims/pkg/platform/tx"

	"github.com/google/uuid"
)

// Store persists claim and cover audits into their own tables. Every
// PersistAudit call runs in a transaction of its own.
type Store struct {
	db *sql.DB
	tx txcontext.Runner
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db, tx: txcontext.Runner{DB: db}}
}

var insertQueries = map[audit.EntityType]string{
	audit.EntityClaim: `
		INSERT INTO claim_audits (id, claim_id, http_request_type, created)
		VALUES ($1, $2, $3, $4)
	`,
	audit.EntityCover: `
		INSERT INTO cover_audits (id, cover_id, http_request_type, created)
		VALUES ($1, $2, $3, $4)
	`,
}

var listQueries = map[audit.EntityType]string{
	audit.EntityClaim: `
		SELECT claim_id, http_request_type, created
		FROM claim_audits
		WHERE claim_id = $1
		ORDER BY created, seq
	`,
	audit.EntityCover: `
		SELECT cover_id, http_request_type, created
		FROM cover_audits
		WHERE cover_id = $1
		ORDER BY created, seq
	`,
}

// PersistAudit writes one audit row inside a fresh transaction.
func (s *Store) PersistAudit(ctx context.Context, record audit.Record) error {
	query, ok := insertQueries[record.EntityType]
	if !ok {
		return fmt.Errorf("unknown audit entity type %q", record.EntityType)
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := txcontext.Execer(txCtx, s.db).ExecContext(txCtx, query,
			uuid.New(),
			record.EntityID,
			record.HTTPMethod,
			record.Created,
		)
		if err != nil {
			return fmt.Errorf("insert %s audit: %w", record.EntityType, err)
		}
		return nil
	})
}

// ListByEntity returns the audits of one claim or cover, oldest first.
func (s *Store) ListByEntity(ctx context.Context, entityType audit.EntityType, entityID string) ([]audit.Record, error) {
	query, ok := listQueries[entityType]
	if !ok {
		return nil, fmt.Errorf("unknown audit entity type %q", entityType)
	}

	rows, err := s.db.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("query %s audits: %w", entityType, err)
	}
	defer rows.Close()

	var records []audit.Record
	for rows.Next() {
		record := audit.Record{EntityType: entityType}
		if err := rows.Scan(&record.EntityID, &record.HTTPMethod, &record.Created); err != nil {
			return nil, fmt.Errorf("scan %s audit: %w", entityType, err)
		}
		record.Created = record.Created.UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s audits: %w", entityType, err)
	}
	return records, nil
}
