package fetch

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestEmails_DedupeKeepsFirstSeenOrder(t *testing.T) {
	text := "Write info@school.org or INFO@school.org, or admissions@school.org today"
	assert.Equal(t, []string{"info@school.org", "admissions@school.org"}, Emails(text))
}

func TestEmails_NoneFound(t *testing.T) {
	assert.Empty(t, Emails("call us instead"))
}

func TestFirstPhone(t *testing.T) {
	cases := []string{
		"(562) 555-0100",
		"562-555-0100",
		"562.555.0100",
		"+1 562 555 0100",
	}
	for _, c := range cases {
		assert.NotEmpty(t, FirstPhone("Front office: "+c), "input %q", c)
	}
	assert.Empty(t, FirstPhone("no number here"))
}

func TestVisibleText_StripsScriptAndStyle(t *testing.T) {
	d := doc(t, `<html><head><style>body{color:red}</style></head>
<body><script>var x = 1;</script><p>Welcome   to
Riverside</p></body></html>`)
	assert.Equal(t, "Welcome to Riverside", VisibleText(d))
}

func TestContactFormURL_FormActionWins(t *testing.T) {
	d := doc(t, `<html><body>
<a href="/contact-us">Contact</a>
<form action="/submit-inquiry"><input name="q"></form>
</body></html>`)
	got := ContactFormURL(d, "https://school.org")
	assert.Equal(t, "https://school.org/submit-inquiry", got)
}

func TestContactFormURL_FallsBackToContactLink(t *testing.T) {
	d := doc(t, `<html><body>
<a href="/about">About</a>
<a href="/contact-us">Get in touch</a>
</body></html>`)
	got := ContactFormURL(d, "https://school.org")
	assert.Equal(t, "https://school.org/contact-us", got)
}

func TestContactFormURL_LinkTextCounts(t *testing.T) {
	d := doc(t, `<html><body><a href="/reach-out">Contact our team</a></body></html>`)
	got := ContactFormURL(d, "https://school.org")
	assert.Equal(t, "https://school.org/reach-out", got)
}

func TestContactFormURL_NothingFound(t *testing.T) {
	d := doc(t, `<html><body><p>just text</p></body></html>`)
	assert.Equal(t, "", ContactFormURL(d, "https://school.org"))
}

func TestParseRobots_LongestPrefixWins(t *testing.T) {
	rules := parseRobots(`
User-agent: *
Disallow: /private
Allow: /private/open
`, "scout-engine/1.0")

	assert.True(t, rules.allowed("/"))
	assert.False(t, rules.allowed("/private/admin"))
	assert.True(t, rules.allowed("/private/open/page"))
}

func TestParseRobots_SpecificAgentOverridesStar(t *testing.T) {
	rules := parseRobots(`
User-agent: *
Disallow: /

User-agent: scout-engine
Disallow: /admin
`, "scout-engine/1.0")

	assert.True(t, rules.allowed("/contact"))
	assert.False(t, rules.allowed("/admin"))
}

func TestParseRobots_AllowWinsLengthTie(t *testing.T) {
	rules := parseRobots(`
User-agent: *
Disallow: /a/b
Allow: /a/b
`, "scout-engine/1.0")
	assert.True(t, rules.allowed("/a/b"))
}

func TestRobotsRules_NilMeansAllowed(t *testing.T) {
	var rules *robotsRules
	assert.True(t, rules.allowed("/anything"))
}

func TestParseRobots_CommentsIgnored(t *testing.T) {
	rules := parseRobots(`
# keep crawlers out of the portal
User-agent: *
Disallow: /portal # staff only
`, "scout-engine/1.0")
	assert.False(t, rules.allowed("/portal/login"))
	assert.True(t, rules.allowed("/news"))
}
