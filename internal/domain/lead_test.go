package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainFromURL(t *testing.T) {
	cases := map[string]string{
		"https://www.riversideacademy.org/":        "riversideacademy.org",
		"http://RiversideAcademy.org/admissions":   "riversideacademy.org",
		"riversideacademy.org":                     "riversideacademy.org",
		"www.riversideacademy.org":                 "riversideacademy.org",
		"https://sub.riversideacademy.org/contact": "sub.riversideacademy.org",
		"": "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DomainFromURL(in), "input %q", in)
	}
}

func TestClone_IsDeep(t *testing.T) {
	l := &Lead{LeadID: "2abc", AllEmails: []string{"a@x.org"}}
	l.SetExtra("city", "Downey, CA")

	c := l.Clone()
	c.AllEmails[0] = "b@x.org"
	c.SetExtra("city", "Fresno, CA")

	assert.Equal(t, "a@x.org", l.AllEmails[0])
	assert.Equal(t, "Downey, CA", l.City())
}

func TestCandidateLead(t *testing.T) {
	c := Candidate{
		Name:        "Riverside Academy",
		City:        "Downey, CA",
		Website:     "https://riversideacademy.org",
		Domain:      "riversideacademy.org",
		Provider:    "serpapi",
		SourceQuery: "Private school Downey CA",
		Phone:       "(562) 555-0100",
	}
	l := c.Lead()
	assert.Empty(t, l.LeadID)
	assert.Equal(t, "Downey, CA", l.City())
	assert.Equal(t, "Private school Downey CA", l.Extras["source_query"])
	assert.Equal(t, "(562) 555-0100", l.Extras["phone"])
}

func TestParseArtifactKind(t *testing.T) {
	for _, k := range []ArtifactKind{KindFirstDraft, KindFollowup, KindBrief} {
		got, err := ParseArtifactKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseArtifactKind("memo")
	assert.Error(t, err)
}

func TestNewLeadID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewLeadID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
