package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout-engine/internal/domain"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Riverside Academy":        "riverside",
		"Riverside School":         "riverside",
		"The Riverside Schools":    "riverside",
		"St. Mary's Academy":       "st mary s",
		"  Bright   Future  K-12 ": "bright future k 12",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestNormalizeName_AllSuffixTokens(t *testing.T) {
	// dropping every token would make everything collide with everything
	assert.Equal(t, "the school", NormalizeName("The School"))
}

func TestNormalizeCity(t *testing.T) {
	assert.Equal(t, "downey", NormalizeCity("Downey, CA"))
	assert.Equal(t, "downey", NormalizeCity("downey"))
	assert.Equal(t, "long beach", NormalizeCity("  Long  Beach , CA 90802"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Riverside Academy", "Riverside School"))
	assert.Equal(t, 0.0, Similarity("", "Riverside Academy"))
	assert.Less(t, Similarity("Riverside Academy", "Lakeside Academy"), 0.90)
	assert.GreaterOrEqual(t, Similarity("Riverside Academy", "Riversade Academy"), 0.88)
}

func lead(id, name, city, dom string) *domain.Lead {
	l := &domain.Lead{LeadID: id, Name: name, Domain: dom}
	if city != "" {
		l.SetExtra("city", city)
	}
	return l
}

func TestResolve_DomainMatch(t *testing.T) {
	r := NewResolver(0.90)
	existing := []*domain.Lead{
		lead("a", "Riverside Academy", "Downey, CA", "riversideacademy.org"),
	}

	dec, err := r.Resolve(domain.Candidate{
		Name:   "Riverside Academy of Downey", // name alone would not match
		City:   "Downey, CA",
		Domain: "riversideacademy.org",
	}, existing)
	require.NoError(t, err)
	assert.Equal(t, "a", dec.MatchID)
	assert.Equal(t, RuleDomain, dec.Rule)
}

func TestResolve_FuzzyNameMatch(t *testing.T) {
	r := NewResolver(0.90)
	existing := []*domain.Lead{
		lead("a", "Riverside Academy", "Downey, CA", "riversideacademy.org"),
	}

	// same school rediscovered without a website
	dec, err := r.Resolve(domain.Candidate{
		Name: "Riverside School",
		City: "Downey",
	}, existing)
	require.NoError(t, err)
	assert.True(t, dec.IsMatch())
	assert.Equal(t, "a", dec.MatchID)
	assert.Equal(t, RuleName, dec.Rule)
}

func TestResolve_CityDisagreementBlocksNameMatch(t *testing.T) {
	r := NewResolver(0.90)
	existing := []*domain.Lead{
		lead("a", "Riverside Academy", "Downey, CA", ""),
	}

	dec, err := r.Resolve(domain.Candidate{
		Name: "Riverside Academy",
		City: "Fresno, CA",
	}, existing)
	require.NoError(t, err)
	assert.False(t, dec.IsMatch())
}

func TestResolve_MissingCityStillMatches(t *testing.T) {
	r := NewResolver(0.90)
	existing := []*domain.Lead{
		lead("a", "Riverside Academy", "", ""),
	}

	dec, err := r.Resolve(domain.Candidate{Name: "Riverside Academy", City: "Downey"}, existing)
	require.NoError(t, err)
	assert.Equal(t, "a", dec.MatchID)
}

func TestResolve_NoMatchIsNewEntity(t *testing.T) {
	r := NewResolver(0.90)
	existing := []*domain.Lead{
		lead("a", "Riverside Academy", "Downey, CA", "riversideacademy.org"),
	}

	dec, err := r.Resolve(domain.Candidate{
		Name:   "Lakeside Prep",
		City:   "Downey, CA",
		Domain: "lakesideprep.org",
	}, existing)
	require.NoError(t, err)
	assert.False(t, dec.IsMatch())
}

func TestResolve_AmbiguousWhenRulesDisagree(t *testing.T) {
	r := NewResolver(0.90)
	existing := []*domain.Lead{
		lead("a", "Lakeside Prep", "Downey, CA", "riversideacademy.org"),
		lead("b", "Riverside Academy", "Downey, CA", "otherdomain.org"),
	}

	_, err := r.Resolve(domain.Candidate{
		Name:   "Riverside Academy",
		City:   "Downey, CA",
		Domain: "riversideacademy.org",
	}, existing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAmbiguousMerge))
}

func TestResolve_ThresholdIsConfigurable(t *testing.T) {
	existing := []*domain.Lead{lead("a", "Riverside Academy", "", "")}
	c := domain.Candidate{Name: "Riverdale Academy"}

	strict := NewResolver(0.99)
	dec, err := strict.Resolve(c, existing)
	require.NoError(t, err)
	assert.False(t, dec.IsMatch())

	loose := NewResolver(0.60)
	dec, err = loose.Resolve(c, existing)
	require.NoError(t, err)
	assert.Equal(t, "a", dec.MatchID)
}
