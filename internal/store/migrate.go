package store

import "database/sql"

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS leads (
  lead_id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  website TEXT NOT NULL DEFAULT '',
  domain TEXT NOT NULL DEFAULT '',
  provider TEXT NOT NULL DEFAULT '',
  contact_email TEXT NOT NULL DEFAULT '',
  contact_role TEXT NOT NULL DEFAULT '',
  all_emails TEXT NOT NULL DEFAULT '[]',
  primary_contact TEXT NOT NULL DEFAULT '',
  linkedin_url TEXT NOT NULL DEFAULT '',
  contact_method TEXT NOT NULL DEFAULT '',
  contact_score INTEGER NOT NULL DEFAULT 0,
  contact_priority_label TEXT NOT NULL DEFAULT '',
  contact_form_url TEXT NOT NULL DEFAULT '',
  contact_page TEXT NOT NULL DEFAULT '',
  about_page TEXT NOT NULL DEFAULT '',
  personalization_hook TEXT NOT NULL DEFAULT '',
  enriched_at TEXT NOT NULL DEFAULT '',
  email1_path TEXT NOT NULL DEFAULT '',
  followup_path TEXT NOT NULL DEFAULT '',
  brief_path TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  extras_json TEXT NOT NULL DEFAULT '{}',
  updated_at TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS artifacts (
  lead_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  path TEXT NOT NULL,
  recorded_at TEXT NOT NULL,
  PRIMARY KEY (lead_id, kind)
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	// Uniqueness only among leads that actually have a domain.
	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_domain
ON leads(domain)
WHERE domain != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
