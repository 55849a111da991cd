package fetch

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// robotsRules is the subset of robots.txt we honor: Allow/Disallow prefixes
// for our user-agent token or *. Longest matching prefix wins; Allow wins a
// length tie.
type robotsRules struct {
	allow    []string
	disallow []string
}

func (r *robotsRules) allowed(path string) bool {
	if r == nil {
		return true
	}
	if path == "" {
		path = "/"
	}
	bestLen, bestAllow := -1, true
	for _, p := range r.disallow {
		if p != "" && strings.HasPrefix(path, p) && len(p) > bestLen {
			bestLen, bestAllow = len(p), false
		}
	}
	for _, p := range r.allow {
		if p != "" && strings.HasPrefix(path, p) && len(p) >= bestLen {
			bestLen, bestAllow = len(p), true
		}
	}
	return bestAllow
}

func parseRobots(body string, agentToken string) *robotsRules {
	agentToken = strings.ToLower(agentToken)
	rules := &robotsRules{}
	starRules := &robotsRules{}

	var cur *robotsRules
	matchedUs := false
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "user-agent":
			ua := strings.ToLower(val)
			switch {
			case ua == "*":
				cur = starRules
			case strings.Contains(agentToken, ua):
				cur = rules
				matchedUs = true
			default:
				cur = nil
			}
		case "disallow":
			if cur != nil {
				cur.disallow = append(cur.disallow, val)
			}
		case "allow":
			if cur != nil {
				cur.allow = append(cur.allow, val)
			}
		}
	}
	if matchedUs {
		return rules
	}
	return starRules
}

// robotsCache fetches and caches robots.txt per host. Unreachable or missing
// robots.txt means everything is allowed, same as the usual parser behavior.
type robotsCache struct {
	mu    sync.Mutex
	hosts map[string]*robotsRules
	hc    *http.Client
	ua    string
}

func newRobotsCache(hc *http.Client, ua string) *robotsCache {
	return &robotsCache{hosts: make(map[string]*robotsRules), hc: hc, ua: ua}
}

func (rc *robotsCache) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	rc.mu.Lock()
	rules, ok := rc.hosts[u.Host]
	rc.mu.Unlock()

	if !ok {
		rules = rc.load(ctx, u)
		rc.mu.Lock()
		rc.hosts[u.Host] = rules
		rc.mu.Unlock()
	}
	return rules.allowed(u.Path)
}

func (rc *robotsCache) load(ctx context.Context, u *url.URL) *robotsRules {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", rc.ua)

	resp, err := rc.hc.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var sb strings.Builder
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		sb.WriteString(sc.Text())
		sb.WriteByte('\n')
	}
	return parseRobots(sb.String(), rc.ua)
}
