// Package legacy maps the canonical store to and from the flat leads.csv the
// rest of the outreach tooling still reads. The file is a derived view, never
// a second source of truth: any divergence is resolved by re-deriving from
// canonical.
package legacy

// Columns is the fixed legacy header. Hand-edited files must keep it; extras
// keys beyond city are not flattened into columns.
var Columns = []string{
	"lead_id",
	"school_name",
	"city",
	"website",
	"domain",
	"provider",
	"contact_email",
	"contact_role",
	"all_emails",
	"primary_contact",
	"linkedin_url",
	"contact_method",
	"contact_score",
	"contact_priority_label",
	"contact_form_url",
	"contact_page",
	"about_page",
	"personalization_hook",
	"enriched_at",
	"email1_path",
	"followup_path",
	"brief_path",
	"notes",
}

// EmailSep joins all_emails into its single field. encoding/csv quoting keeps
// embedded delimiters and newlines lossless either way.
const EmailSep = "; "
