package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"scout-engine/internal/domain"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave is the web-search fallback when no SerpAPI quota is available. Plain
// web results carry less structure than maps results, so candidates only get
// name, website, and domain.
type Brave struct {
	apiKey   string
	blocked  []string
	endpoint string
	hc       *http.Client
	log      *zap.SugaredLogger
}

func NewBrave(apiKey string, blocked []string, log *zap.SugaredLogger) *Brave {
	return &Brave{
		apiKey:   apiKey,
		blocked:  blocked,
		endpoint: braveEndpoint,
		hc:       &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

func (p *Brave) Name() string { return "brave" }

type braveResponse struct {
	Web struct {
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"results"`
	} `json:"web"`
}

func (p *Brave) Discover(ctx context.Context, city string, max int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("q", "private K-12 schools in "+city)
	count := max
	if count > 20 {
		count = 20
	}
	params.Set("count", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.apiKey)

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search: %v: %w", err, domain.ErrProviderUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("brave search status %d: %w", resp.StatusCode, domain.ErrProviderUnavailable)
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("brave decode: %w", err)
	}

	var out []domain.Candidate
	for _, item := range body.Web.Results {
		if len(out) >= max {
			break
		}
		if item.Title == "" {
			continue
		}
		dom := domain.DomainFromURL(item.URL)
		if dom != "" && isBlockedDomain(dom, p.blocked) {
			p.log.Infow("discover rejected", "school", item.Title, "domain", dom, "reason", "blocked directory domain")
			continue
		}
		out = append(out, domain.Candidate{
			Name:     item.Title,
			City:     city,
			Website:  item.URL,
			Domain:   dom,
			Provider: "brave",
		})
	}
	return out, nil
}
