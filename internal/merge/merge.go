// Package merge applies partial enrichment updates onto a canonical lead.
// Enrichment is monotonic: no merge ever reduces the set of populated fields.
package merge

import (
	"strings"
	"time"

	"scout-engine/internal/domain"
)

// Update is a partial field map. Zero values mean "no opinion"; they never
// clear existing data.
type Update struct {
	Name    string
	Website string

	// Identity/provenance: filled only when the lead has no value yet, never
	// replaced. Domain uniqueness is the store's job.
	Domain   string
	Provider string

	ContactEmail         string
	ContactRole          string
	AllEmails            []string
	PrimaryContact       string
	LinkedInURL          string
	ContactMethod        string
	ContactScore         int
	ContactPriorityLabel string
	ContactFormURL       string
	ContactPage          string
	AboutPage            string
	PersonalizationHook  string
	Email1Path           string
	FollowupPath         string
	BriefPath            string
	Notes                string
	Extras               map[string]string

	// EnrichedAt carries an enriched_at value as data (legacy-file import).
	EnrichedAt string

	// Timestamp becomes the lead's enriched_at iff the merge changed anything.
	Timestamp time.Time
}

// values that scraped pages and hand-edited CSVs use for "nothing here";
// treated the same as empty.
var placeholders = map[string]bool{
	"":        true,
	"n/a":     true,
	"na":      true,
	"none":    true,
	"null":    true,
	"unknown": true,
	"-":       true,
}

func IsPlaceholder(v string) bool {
	return placeholders[strings.ToLower(strings.TrimSpace(v))]
}

// Apply merges u onto a copy of existing and reports whether anything
// changed. lead_id is never touched; domain and provider are filled only when
// still empty. Dry-run enrichment calls this exact function with placeholder
// updates.
func Apply(existing *domain.Lead, u Update) (*domain.Lead, bool) {
	out := existing.Clone()
	changed := false

	if out.Domain == "" && !IsPlaceholder(u.Domain) {
		out.Domain = u.Domain
		changed = true
	}
	if out.Provider == "" && !IsPlaceholder(u.Provider) {
		out.Provider = u.Provider
		changed = true
	}

	set := func(dst *string, v string) {
		if IsPlaceholder(v) || *dst == v {
			return
		}
		*dst = v
		changed = true
	}

	set(&out.Name, u.Name)
	set(&out.Website, u.Website)
	set(&out.ContactEmail, u.ContactEmail)
	set(&out.ContactRole, u.ContactRole)
	set(&out.PrimaryContact, u.PrimaryContact)
	set(&out.LinkedInURL, u.LinkedInURL)
	set(&out.ContactMethod, u.ContactMethod)
	set(&out.ContactPriorityLabel, u.ContactPriorityLabel)
	set(&out.ContactFormURL, u.ContactFormURL)
	set(&out.ContactPage, u.ContactPage)
	set(&out.AboutPage, u.AboutPage)
	set(&out.PersonalizationHook, u.PersonalizationHook)
	set(&out.Email1Path, u.Email1Path)
	set(&out.FollowupPath, u.FollowupPath)
	set(&out.BriefPath, u.BriefPath)
	set(&out.Notes, u.Notes)
	set(&out.EnrichedAt, u.EnrichedAt)

	if u.ContactScore != 0 && u.ContactScore != out.ContactScore {
		out.ContactScore = u.ContactScore
		changed = true
	}

	if merged, grew := unionEmails(out.AllEmails, u.AllEmails); grew {
		out.AllEmails = merged
		changed = true
	}

	for k, v := range u.Extras {
		if IsPlaceholder(v) {
			continue
		}
		if out.Extras[k] == v {
			continue
		}
		out.SetExtra(k, v)
		changed = true
	}

	if changed && !u.Timestamp.IsZero() {
		out.EnrichedAt = u.Timestamp.UTC().Format(time.RFC3339)
	}
	return out, changed
}

// unionEmails dedupes case-insensitively, keeping first-seen order.
func unionEmails(existing, incoming []string) ([]string, bool) {
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[strings.ToLower(strings.TrimSpace(e))] = true
	}
	out := existing
	grew := false
	for _, e := range incoming {
		e = strings.TrimSpace(e)
		if IsPlaceholder(e) {
			continue
		}
		k := strings.ToLower(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
		grew = true
	}
	return out, grew
}
