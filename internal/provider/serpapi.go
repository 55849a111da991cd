package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"scout-engine/internal/domain"
)

const serpAPIEndpoint = "https://serpapi.com/search.json"

// SerpAPI discovers schools through the google_maps engine, fanning one city
// out into several school-type queries like the manual research workflow did.
type SerpAPI struct {
	apiKey   string
	blocked  []string
	endpoint string
	hc       *http.Client
	log      *zap.SugaredLogger
}

func NewSerpAPI(apiKey string, blocked []string, log *zap.SugaredLogger) *SerpAPI {
	return &SerpAPI{
		apiKey:   apiKey,
		blocked:  blocked,
		endpoint: serpAPIEndpoint,
		hc:       &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

func (p *SerpAPI) Name() string { return "serpapi" }

type serpLocalResult struct {
	Title   string `json:"title"`
	Name    string `json:"name"`
	Website string `json:"website"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Links   struct {
		Website string `json:"website"`
	} `json:"links"`
}

type serpResponse struct {
	LocalResults []serpLocalResult `json:"local_results"`
}

func (p *SerpAPI) Discover(ctx context.Context, city string, max int) ([]domain.Candidate, error) {
	normalizedCity := strings.TrimSpace(strings.ReplaceAll(city, ",", ""))
	queries := []string{
		"Private school " + normalizedCity,
		"Catholic school " + normalizedCity,
		"Christian school " + normalizedCity,
		"Montessori " + normalizedCity,
		"College prep " + normalizedCity,
	}

	var out []domain.Candidate
	seenDomains := map[string]bool{}
	seenNames := map[string]bool{}

	for _, query := range queries {
		resp, err := p.search(ctx, query)
		if err != nil {
			return out, fmt.Errorf("serpapi query %q: %v: %w", query, err, domain.ErrProviderUnavailable)
		}

		for _, item := range resp.LocalResults {
			name := item.Title
			if name == "" {
				name = item.Name
			}
			website := item.Website
			if website == "" {
				website = item.Links.Website
			}
			if name == "" {
				p.log.Infow("discover rejected", "query", query, "reason", "missing school name")
				continue
			}

			dom := domain.DomainFromURL(website)
			if dom != "" && isBlockedDomain(dom, p.blocked) {
				p.log.Infow("discover rejected", "query", query, "school", name, "domain", dom, "reason", "blocked directory domain")
				continue
			}
			if dom != "" && seenDomains[dom] {
				p.log.Infow("discover rejected", "query", query, "school", name, "domain", dom, "reason", "duplicate domain")
				continue
			}
			normName := strings.ToLower(strings.TrimSpace(name))
			if seenNames[normName] {
				p.log.Infow("discover rejected", "query", query, "school", name, "reason", "duplicate school name")
				continue
			}

			out = append(out, domain.Candidate{
				Name:        name,
				City:        city,
				Website:     website,
				Domain:      dom,
				Provider:    "serpapi",
				SourceQuery: query,
				Address:     item.Address,
				Phone:       item.Phone,
			})
			if dom != "" {
				seenDomains[dom] = true
			}
			seenNames[normName] = true
			p.log.Infow("discover accepted", "query", query, "school", name, "domain", dom, "website", website)
			if len(out) >= max {
				return out, nil
			}
		}
	}
	return out, nil
}

func (p *SerpAPI) search(ctx context.Context, query string) (*serpResponse, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("q", query)
	params.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var body serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &body, nil
}
