package domain

import "errors"

// Error taxonomy. Store-level violations abort the current command; per-row
// import and per-lead enrichment failures are collected into a summary and the
// batch continues.
var (
	// ErrNotFound: read of an unknown lead_id.
	ErrNotFound = errors.New("lead not found")

	// ErrConstraintViolation: an upsert would give two leads the same
	// non-empty domain without going through the identity resolver.
	ErrConstraintViolation = errors.New("domain uniqueness violation")

	// ErrAmbiguousMerge: a candidate matches two different canonical leads.
	// Merging canonical rows into each other is an administrative action, not
	// something the resolver may do silently.
	ErrAmbiguousMerge = errors.New("candidate matches multiple canonical leads")

	// ErrUnresolvableRow: a legacy-file row with no lead_id, domain, or
	// name+city to key on. Reported and skipped, never fatal to the import.
	ErrUnresolvableRow = errors.New("row has no resolvable identity")

	// Collaborator-level soft failures.
	ErrProviderUnavailable = errors.New("search provider unavailable")
	ErrFetchFailed         = errors.New("page fetch failed")
)
