package domain

import (
	"net/url"
	"strings"

	"github.com/segmentio/ksuid"
)

// Lead is the canonical record of one school. One row per real-world
// organization; lead_id is minted once and never changes.
type Lead struct {
	LeadID   string
	Name     string
	Website  string
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
	EnrichedAt           string // RFC3339

	Email1Path   string
	FollowupPath string
	BriefPath    string

	Notes string

	// Extras carries attributes outside the fixed column set (city, address,
	// phone, source_query, ...). Keys survive export/import round trips.
	Extras map[string]string
}

// City is stored in extras so the canonical schema stays stable while the
// legacy file keeps its dedicated column.
func (l *Lead) City() string {
	if l.Extras == nil {
		return ""
	}
	return l.Extras["city"]
}

func (l *Lead) SetExtra(key, value string) {
	if l.Extras == nil {
		l.Extras = make(map[string]string)
	}
	l.Extras[key] = value
}

// Clone returns a deep copy; merge operates on copies so callers never see a
// half-applied update.
func (l *Lead) Clone() *Lead {
	c := *l
	if l.AllEmails != nil {
		c.AllEmails = append([]string(nil), l.AllEmails...)
	}
	if l.Extras != nil {
		c.Extras = make(map[string]string, len(l.Extras))
		for k, v := range l.Extras {
			c.Extras[k] = v
		}
	}
	return &c
}

// NewLeadID mints a K-sortable unique id, so listing by lead_id is stable and
// roughly chronological.
func NewLeadID() string {
	return ksuid.New().String()
}

// DomainFromURL derives the site identity used for dedupe: lower-cased host,
// no scheme, no "www.", no trailing slash.
func DomainFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.TrimSpace(u.Host))
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimSuffix(host, "/")
	return host
}

// Candidate is a discovery hit before identity resolution.
type Candidate struct {
	Name        string
	City        string
	Website     string
	Domain      string
	Provider    string
	SourceQuery string
	Address     string
	Phone       string
}

// Lead converts a candidate into a new canonical lead (no lead_id yet; the
// store mints one on insert).
func (c Candidate) Lead() *Lead {
	l := &Lead{
		Name:     c.Name,
		Website:  c.Website,
		Domain:   c.Domain,
		Provider: c.Provider,
	}
	if c.City != "" {
		l.SetExtra("city", c.City)
	}
	if c.SourceQuery != "" {
		l.SetExtra("source_query", c.SourceQuery)
	}
	if c.Address != "" {
		l.SetExtra("address", c.Address)
	}
	if c.Phone != "" {
		l.SetExtra("phone", c.Phone)
	}
	return l
}
