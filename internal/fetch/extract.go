package fetch

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phoneRe = regexp.MustCompile(`(?:\+1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Emails returns every address in text, first-seen order, deduped
// case-insensitively.
func Emails(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range emailRe.FindAllString(text, -1) {
		k := strings.ToLower(m)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

func FirstEmail(text string) string {
	return emailRe.FindString(text)
}

func FirstPhone(text string) string {
	return phoneRe.FindString(text)
}

// VisibleText flattens a parsed page to whitespace-normalized visible text.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ContactFormURL finds the most plausible contact form target: first a form
// action, then any link that mentions contact. Relative URLs resolve against
// base.
func ContactFormURL(doc *goquery.Document, base string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}

	var found string
	doc.Find("form[action]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		action, ok := s.Attr("action")
		if !ok || strings.TrimSpace(action) == "" {
			return true
		}
		found = resolveRef(baseURL, action)
		return false
	})
	if found != "" {
		return found
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		if href == "" {
			return true
		}
		if strings.Contains(strings.ToLower(href), "contact") || strings.Contains(text, "contact") {
			found = resolveRef(baseURL, href)
			return false
		}
		return true
	})
	return found
}

func resolveRef(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
