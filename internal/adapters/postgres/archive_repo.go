package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kumbhsarthi/sarthi/internal/core/domain"
)

// ArchiveRepo implements ports.ArchiveRepository. The full case document is
// stored as JSONB alongside a few indexed columns; the version guard makes
// upserts safe to replay out of order.
type ArchiveRepo struct {
	db *DB
}

func NewArchiveRepo(db *DB) *ArchiveRepo {
	return &ArchiveRepo{db: db}
}

// Upsert inserts or updates a case. Rows carrying a version lower than the
// stored one are ignored so redelivered relay events cannot regress state.
func (r *ArchiveRepo) Upsert(ctx context.Context, c *domain.EmergencyCase) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal case %s: %w", c.ID, err)
	}

	_, err = r.db.Pool.Exec(ctx, `
        INSERT INTO emergency_cases (id, type, zone, status, version, reported_at, payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            status = EXCLUDED.status,
            version = EXCLUDED.version,
            payload = EXCLUDED.payload,
            updated_at = now()
        WHERE emergency_cases.version < EXCLUDED.version
    `, c.ID, string(c.Type), c.Zone, string(c.Status), c.Version, c.Timestamp, payload)
	if err != nil {
		return fmt.Errorf("upsert case %s: %w", c.ID, err)
	}
	return nil
}

// GetByID loads one archived case.
func (r *ArchiveRepo) GetByID(ctx context.Context, id string) (*domain.EmergencyCase, error) {
	var payload []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT payload FROM emergency_cases WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}

	var c domain.EmergencyCase
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("decode case %s: %w", id, err)
	}
	return &c, nil
}

// ListRecent returns the most recently reported cases, newest first.
func (r *ArchiveRepo) ListRecent(ctx context.Context, limit int) ([]domain.EmergencyCase, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := r.db.Pool.Query(ctx, `
        SELECT payload FROM emergency_cases
        ORDER BY reported_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []domain.EmergencyCase
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var c domain.EmergencyCase
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// CountByStatus aggregates archived cases for the control room dashboard.
func (r *ArchiveRepo) CountByStatus(ctx context.Context) (map[domain.CaseStatus]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT status, count(*) FROM emergency_cases GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.CaseStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.CaseStatus(status)] = n
	}
	return counts, rows.Err()
}
