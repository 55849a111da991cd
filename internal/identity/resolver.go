// Package identity decides whether a discovered candidate refers to a school
// we already track. It is a pure decision function; the caller performs the
// upsert.
package identity

import (
	"fmt"

	"scout-engine/internal/domain"
)

const DefaultNameThreshold = 0.90

// Rule names reported with each decision, for logging.
const (
	RuleDomain = "domain"
	RuleName   = "name"
)

type Decision struct {
	MatchID string // empty means new entity
	Rule    string
}

func (d Decision) IsMatch() bool { return d.MatchID != "" }

type Resolver struct {
	NameThreshold float64
}

func NewResolver(threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultNameThreshold
	}
	return &Resolver{NameThreshold: threshold}
}

// Resolve applies the matching rules in order, first hit wins:
//  1. non-empty exact domain match
//  2. fuzzy name match at or above the threshold, with city agreement when
//     both sides have a city
//
// If the two rules point at different canonical leads the candidate is
// ambiguous; merging canonical rows is out of scope, so that fails loudly
// instead of silently picking one.
func (r *Resolver) Resolve(c domain.Candidate, existing []*domain.Lead) (Decision, error) {
	var domainHit *domain.Lead
	if c.Domain != "" {
		for _, l := range existing {
			if l.Domain != "" && l.Domain == c.Domain {
				domainHit = l
				break
			}
		}
	}

	var nameHit *domain.Lead
	for _, l := range existing {
		if Similarity(c.Name, l.Name) < r.NameThreshold {
			continue
		}
		if c.City != "" && l.City() != "" &&
			NormalizeCity(c.City) != NormalizeCity(l.City()) {
			continue
		}
		nameHit = l
		break
	}

	if domainHit != nil && nameHit != nil && domainHit.LeadID != nameHit.LeadID {
		return Decision{}, fmt.Errorf(
			"candidate %q matches lead %s by domain and lead %s by name: %w",
			c.Name, domainHit.LeadID, nameHit.LeadID, domain.ErrAmbiguousMerge)
	}

	if domainHit != nil {
		return Decision{MatchID: domainHit.LeadID, Rule: RuleDomain}, nil
	}
	if nameHit != nil {
		return Decision{MatchID: nameHit.LeadID, Rule: RuleName}, nil
	}
	return Decision{}, nil
}
