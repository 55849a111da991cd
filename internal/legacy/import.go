package legacy

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"scout-engine/internal/domain"
	"scout-engine/internal/identity"
	"scout-engine/internal/merge"
	"scout-engine/internal/store"
)

// Row is one parsed legacy line: a field-update map plus whatever identity the
// row carried.
type Row struct {
	Line   int
	LeadID string
	Name   string
	City   string
	Domain string
	Update merge.Update
}

// RowError is a per-row failure; it never aborts the batch.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

// Summary reports what an import did.
type Summary struct {
	Applied int
	Skipped int
	Errors  []RowError
}

// Parse reads the legacy file into field-update rows. Column order is taken
// from the header, so hand-edited files with reordered columns still load.
// Rows with no lead_id, domain, or name are unresolvable and reported.
func Parse(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	var rowErrs []RowError
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}

		row := Row{
			Line:   line,
			LeadID: field(rec, "lead_id"),
			Name:   field(rec, "school_name"),
			City:   field(rec, "city"),
			Domain: field(rec, "domain"),
		}
		if row.LeadID == "" && row.Domain == "" && row.Name == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Err: domain.ErrUnresolvableRow})
			continue
		}

		score := 0
		if s := field(rec, "contact_score"); s != "" {
			score, err = strconv.Atoi(s)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("contact_score: %w", err)})
				continue
			}
		}

		var emails []string
		if s := field(rec, "all_emails"); s != "" {
			for _, e := range strings.Split(s, ";") {
				if e = strings.TrimSpace(e); e != "" {
					emails = append(emails, e)
				}
			}
		}

		u := merge.Update{
			Name:                 row.Name,
			Website:              field(rec, "website"),
			Domain:               row.Domain,
			Provider:             field(rec, "provider"),
			ContactEmail:         field(rec, "contact_email"),
			ContactRole:          field(rec, "contact_role"),
			AllEmails:            emails,
			PrimaryContact:       field(rec, "primary_contact"),
			LinkedInURL:          field(rec, "linkedin_url"),
			ContactMethod:        field(rec, "contact_method"),
			ContactScore:         score,
			ContactPriorityLabel: field(rec, "contact_priority_label"),
			ContactFormURL:       field(rec, "contact_form_url"),
			ContactPage:          field(rec, "contact_page"),
			AboutPage:            field(rec, "about_page"),
			PersonalizationHook:  field(rec, "personalization_hook"),
			EnrichedAt:           field(rec, "enriched_at"),
			Email1Path:           field(rec, "email1_path"),
			FollowupPath:         field(rec, "followup_path"),
			BriefPath:            field(rec, "brief_path"),
			Notes:                field(rec, "notes"),
		}
		if row.City != "" {
			u.Extras = map[string]string{"city": row.City}
		}
		row.Update = u
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

// Apply pushes parsed rows into the store. Rows keyed by lead_id go straight
// to Upsert; rows without one run through the identity resolver against the
// current store state (hand-edited files drop ids all the time). All updates
// flow through the merger, so extras keys the file cannot carry survive.
func Apply(ctx context.Context, db *store.DB, res *identity.Resolver, rows []Row) Summary {
	var sum Summary
	for _, row := range rows {
		id := row.LeadID
		if id == "" {
			existing, err := db.ListAll(ctx)
			if err != nil {
				sum.Errors = append(sum.Errors, RowError{Line: row.Line, Err: err})
				sum.Skipped++
				continue
			}
			dec, err := res.Resolve(domain.Candidate{
				Name:   row.Name,
				City:   row.City,
				Domain: row.Domain,
			}, existing)
			if err != nil {
				sum.Errors = append(sum.Errors, RowError{Line: row.Line, Err: err})
				sum.Skipped++
				continue
			}
			id = dec.MatchID
		}

		if _, _, err := db.Upsert(ctx, id, row.Update); err != nil {
			sum.Errors = append(sum.Errors, RowError{Line: row.Line, Err: err})
			sum.Skipped++
			continue
		}
		sum.Applied++
	}
	return sum
}

// ImportFile is Parse+Apply for a file on disk. A missing file imports
// nothing; that is how first runs look.
func ImportFile(ctx context.Context, db *store.DB, res *identity.Resolver, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Summary{}, nil
		}
		return Summary{}, err
	}
	defer f.Close()

	rows, rowErrs, err := Parse(f)
	if err != nil {
		return Summary{}, err
	}
	sum := Apply(ctx, db, res, rows)
	sum.Errors = append(rowErrs, sum.Errors...)
	sum.Skipped += len(rowErrs)
	return sum, nil
}
