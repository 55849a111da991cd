// Package fetch pulls school pages for enrichment: robots-respecting,
// rate-limited HTTP plus goquery extraction helpers.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"scout-engine/internal/domain"
)

// Pages is the enrichment bundle for one school site. Empty fields mean the
// page was missing, disallowed, or unreachable; enrichment treats that as a
// normal no-usable-fields input.
type Pages struct {
	Homepage   string // visible text
	Contact    string
	About      string
	ContactURL string
	AboutURL   string
	FormURL    string
}

func (p Pages) Aggregate() string {
	return strings.TrimSpace(strings.Join([]string{p.Homepage, p.Contact, p.About}, "\n"))
}

// PageFetcher is the collaborator interface the enrichment core consumes.
type PageFetcher interface {
	FetchPages(ctx context.Context, website string) (Pages, error)
}

type HTTPFetcher struct {
	hc      *http.Client
	limiter *HostLimiter
	robots  *robotsCache
	ua      string
	log     *zap.SugaredLogger
}

func NewHTTPFetcher(ua string, reqPerSec float64, burst int, log *zap.SugaredLogger) *HTTPFetcher {
	hc := &http.Client{Timeout: 20 * time.Second}
	return &HTTPFetcher{
		hc:      hc,
		limiter: NewHostLimiter(reqPerSec, burst),
		robots:  newRobotsCache(hc, ua),
		ua:      ua,
		log:     log,
	}
}

// FetchPages grabs the homepage plus the conventional /contact and /about
// pages. A dead homepage is ErrFetchFailed; missing subpages are not errors.
func (f *HTTPFetcher) FetchPages(ctx context.Context, website string) (Pages, error) {
	var pages Pages
	if website == "" {
		return pages, nil
	}
	if !f.robots.Allowed(ctx, website) {
		f.log.Infow("robots disallow", "url", website)
		return pages, nil
	}

	home, err := f.fetchDoc(ctx, website)
	if err != nil {
		return pages, fmt.Errorf("%s: %v: %w", website, err, domain.ErrFetchFailed)
	}
	pages.Homepage = VisibleText(home)
	pages.FormURL = ContactFormURL(home, website)

	for _, sub := range []struct {
		path string
		text *string
		url  *string
	}{
		{"/contact", &pages.Contact, &pages.ContactURL},
		{"/about", &pages.About, &pages.AboutURL},
	} {
		u := joinPath(website, sub.path)
		if u == "" || !f.robots.Allowed(ctx, u) {
			continue
		}
		doc, err := f.fetchDoc(ctx, u)
		if err != nil {
			continue
		}
		*sub.text = VisibleText(doc)
		*sub.url = u
	}
	return pages, nil
}

func (f *HTTPFetcher) fetchDoc(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := f.limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.ua)

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func joinPath(base, path string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(path)
	if err != nil {
		return ""
	}
	return u.ResolveReference(ref).String()
}
