package merge

import "scout-engine/internal/domain"

// FromCandidate shapes a discovery hit as a merge update, so duplicate hits
// flow through the same non-clobbering policy as enrichment.
func FromCandidate(c domain.Candidate) Update {
	u := Update{
		Name:     c.Name,
		Website:  c.Website,
		Domain:   c.Domain,
		Provider: c.Provider,
	}
	u.Extras = map[string]string{}
	if c.City != "" {
		u.Extras["city"] = c.City
	}
	if c.SourceQuery != "" {
		u.Extras["source_query"] = c.SourceQuery
	}
	if c.Address != "" {
		u.Extras["address"] = c.Address
	}
	if c.Phone != "" {
		u.Extras["phone"] = c.Phone
	}
	return u
}
