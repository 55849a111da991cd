package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"scout-engine/internal/domain"
	"scout-engine/internal/merge"
)

const leadColumns = `lead_id, name, website, domain, provider, contact_email,
contact_role, all_emails, primary_contact, linkedin_url, contact_method,
contact_score, contact_priority_label, contact_form_url, contact_page,
about_page, personalization_hook, enriched_at, email1_path, followup_path,
brief_path, notes, extras_json`

// Upsert applies u to the lead identified by leadID through the merge policy,
// inside one transaction. An empty or unknown leadID inserts a new row with a
// freshly minted lead_id (ids are never reused). Returns the canonical id and
// whether the row changed.
//
// The unique domain index is the backstop for callers that skip the identity
// resolver; hitting it surfaces as ErrConstraintViolation, not a silent merge.
func (d *DB) Upsert(ctx context.Context, leadID string, u merge.Update) (string, bool, error) {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing *domain.Lead
	if leadID != "" {
		existing, err = getTx(ctx, tx, leadID)
		if err != nil && err != domain.ErrNotFound {
			return "", false, err
		}
	}

	insert := existing == nil
	if insert {
		existing = &domain.Lead{LeadID: domain.NewLeadID()}
	}

	merged, changed := merge.Apply(existing, u)
	if insert {
		changed = true
	}
	if !changed {
		return merged.LeadID, false, tx.Commit()
	}

	if merged.Domain != "" && (insert || existing.Domain != merged.Domain) {
		// domain newly set on this row: defensive uniqueness check
		var other string
		err := tx.QueryRowContext(ctx,
			`SELECT lead_id FROM leads WHERE domain = ? AND lead_id != ? LIMIT 1;`,
			merged.Domain, merged.LeadID,
		).Scan(&other)
		if err == nil {
			return "", false, fmt.Errorf(
				"domain %q already belongs to lead %s: %w",
				merged.Domain, other, domain.ErrConstraintViolation)
		}
		if err != sql.ErrNoRows {
			return "", false, err
		}
	}

	if err := writeTx(ctx, tx, merged); err != nil {
		return "", false, err
	}
	return merged.LeadID, true, tx.Commit()
}

// Get returns the lead or ErrNotFound.
func (d *DB) Get(ctx context.Context, leadID string) (*domain.Lead, error) {
	row := d.Pool.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE lead_id = ?;`, leadID)
	return scanLead(row)
}

// ListAll returns every lead ordered by lead_id, so exports are reproducible.
func (d *DB) ListAll(ctx context.Context) ([]*domain.Lead, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY lead_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Count is cheaper than ListAll when only emptiness matters (CSV seeding).
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads;`).Scan(&n)
	return n, err
}

func getTx(ctx context.Context, tx *sql.Tx, leadID string) (*domain.Lead, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE lead_id = ?;`, leadID)
	return scanLead(row)
}

func writeTx(ctx context.Context, tx *sql.Tx, l *domain.Lead) error {
	emailsJSON, err := json.Marshal(nonNil(l.AllEmails))
	if err != nil {
		return err
	}
	extras := l.Extras
	if extras == nil {
		extras = map[string]string{}
	}
	extrasJSON, err := json.Marshal(extras)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO leads (`+leadColumns+`, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(lead_id) DO UPDATE SET
  name=excluded.name,
  website=excluded.website,
  domain=excluded.domain,
  provider=excluded.provider,
  contact_email=excluded.contact_email,
  contact_role=excluded.contact_role,
  all_emails=excluded.all_emails,
  primary_contact=excluded.primary_contact,
  linkedin_url=excluded.linkedin_url,
  contact_method=excluded.contact_method,
  contact_score=excluded.contact_score,
  contact_priority_label=excluded.contact_priority_label,
  contact_form_url=excluded.contact_form_url,
  contact_page=excluded.contact_page,
  about_page=excluded.about_page,
  personalization_hook=excluded.personalization_hook,
  enriched_at=excluded.enriched_at,
  email1_path=excluded.email1_path,
  followup_path=excluded.followup_path,
  brief_path=excluded.brief_path,
  notes=excluded.notes,
  extras_json=excluded.extras_json,
  updated_at=excluded.updated_at;`,
		l.LeadID, l.Name, l.Website, l.Domain, l.Provider, l.ContactEmail,
		l.ContactRole, string(emailsJSON), l.PrimaryContact, l.LinkedInURL,
		l.ContactMethod, l.ContactScore, l.ContactPriorityLabel,
		l.ContactFormURL, l.ContactPage, l.AboutPage, l.PersonalizationHook,
		l.EnrichedAt, l.Email1Path, l.FollowupPath, l.BriefPath, l.Notes,
		string(extrasJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write lead %s: %w", l.LeadID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var l domain.Lead
	var emailsJSON, extrasJSON string
	err := row.Scan(
		&l.LeadID, &l.Name, &l.Website, &l.Domain, &l.Provider,
		&l.ContactEmail, &l.ContactRole, &emailsJSON, &l.PrimaryContact,
		&l.LinkedInURL, &l.ContactMethod, &l.ContactScore,
		&l.ContactPriorityLabel, &l.ContactFormURL, &l.ContactPage,
		&l.AboutPage, &l.PersonalizationHook, &l.EnrichedAt, &l.Email1Path,
		&l.FollowupPath, &l.BriefPath, &l.Notes, &extrasJSON,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(emailsJSON), &l.AllEmails); err != nil {
		return nil, fmt.Errorf("lead %s all_emails: %w", l.LeadID, err)
	}
	if len(l.AllEmails) == 0 {
		l.AllEmails = nil
	}
	extras := map[string]string{}
	if err := json.Unmarshal([]byte(extrasJSON), &extras); err != nil {
		return nil, fmt.Errorf("lead %s extras: %w", l.LeadID, err)
	}
	if len(extras) > 0 {
		l.Extras = extras
	}
	return &l, nil
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
