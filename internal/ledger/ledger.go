// Package ledger tracks which outreach artifacts exist for each lead and
// where they were written. Recording again is regeneration: the ledger keeps
// the newest path and leaves the decision to regenerate to the caller.
package ledger

import (
	"context"
	"database/sql"
	"time"

	"scout-engine/internal/domain"
)

type Ledger struct {
	db *sql.DB
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Record(ctx context.Context, leadID string, kind domain.ArtifactKind, path string) error {
	_, err := l.db.ExecContext(ctx, `
INSERT INTO artifacts(lead_id, kind, path, recorded_at)
VALUES(?,?,?,?)
ON CONFLICT(lead_id, kind) DO UPDATE SET
  path = excluded.path,
  recorded_at = excluded.recorded_at;
`, leadID, string(kind), path, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get returns the recorded path, or "" when the pair was never recorded.
func (l *Ledger) Get(ctx context.Context, leadID string, kind domain.ArtifactKind) (string, error) {
	var path string
	err := l.db.QueryRowContext(ctx,
		`SELECT path FROM artifacts WHERE lead_id = ? AND kind = ? LIMIT 1;`,
		leadID, string(kind),
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func (l *Ledger) Has(ctx context.Context, leadID string, kind domain.ArtifactKind) (bool, error) {
	path, err := l.Get(ctx, leadID, kind)
	return path != "", err
}
