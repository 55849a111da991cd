// Package enrich augments stored leads from their websites: fetch pages
// concurrently, extract contacts, generate a personalization hook, and push
// field updates through the merge policy.
package enrich

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"scout-engine/internal/domain"
	"scout-engine/internal/fetch"
	"scout-engine/internal/llm"
	"scout-engine/internal/merge"
	"scout-engine/internal/store"
)

type Runner struct {
	DB      *store.DB
	Fetcher fetch.PageFetcher
	Gen     llm.ContentGenerator
	Workers int
	DryRun  bool
	Log     *zap.SugaredLogger
	Now     func() time.Time
}

type Result struct {
	Processed int
	Updated   int
	Failed    int
	Errors    []error
}

// Run enriches every stored lead. Fetches run on a bounded pool; each lead
// appears once in the list, so no lead's merge-and-write step can race with
// itself, and all writes serialize through the store. One lead failing never
// aborts the rest. The caller re-exports the legacy view after Run returns,
// so the exported file always reflects a completed batch.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	leads, err := r.DB.ListAll(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(leads) == 0 {
		return Result{}, nil
	}

	if r.DryRun {
		return r.dryRun(ctx, leads, now), nil
	}

	var mu sync.Mutex
	res := Result{}

	g, gctx := errgroup.WithContext(ctx)
	workers := r.Workers
	if workers <= 0 {
		workers = 4
	}
	g.SetLimit(workers)

	for _, lead := range leads {
		lead := lead
		g.Go(func() error {
			u, err := r.enrichOne(gctx, lead, now())

			mu.Lock()
			defer mu.Unlock()
			res.Processed++
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Errorf("lead %s: %w", lead.LeadID, err))
				r.Log.Warnw("enrich failed", "lead", lead.LeadID, "school", lead.Name, "err", err)
				return nil // best-effort: don't cancel siblings
			}

			_, changed, err := r.DB.Upsert(gctx, lead.LeadID, u)
			if err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Errorf("lead %s: %w", lead.LeadID, err))
				return nil
			}
			if changed {
				res.Updated++
			}
			return nil
		})
	}
	_ = g.Wait()
	return res, nil
}

func (r *Runner) enrichOne(ctx context.Context, lead *domain.Lead, ts time.Time) (merge.Update, error) {
	u := merge.Update{Timestamp: ts}

	pages, err := r.Fetcher.FetchPages(ctx, lead.Website)
	if err != nil {
		// unreachable site is still worth a hook attempt, as a soft failure
		r.Log.Infow("fetch failed", "lead", lead.LeadID, "website", lead.Website, "err", err)
	}

	agg := pages.Aggregate()
	if agg != "" {
		emails := fetch.Emails(agg)
		if len(emails) > 0 {
			u.ContactEmail = emails[0]
			u.AllEmails = emails
		}
		u.ContactPage = pages.ContactURL
		u.AboutPage = pages.AboutURL
		u.ContactFormURL = pages.FormURL
		if phone := fetch.FirstPhone(agg); phone != "" {
			u.Extras = map[string]string{"phone": phone}
		}
	}

	hook, err := r.Gen.Hook(ctx, lead, agg)
	if err != nil {
		return u, err
	}
	u.PersonalizationHook = hook
	return u, nil
}

// dryRun takes the exact same merge code path with placeholder updates, so
// divergence between dry and real runs cannot hide. Nothing is written.
func (r *Runner) dryRun(_ context.Context, leads []*domain.Lead, now func() time.Time) Result {
	res := Result{}
	for _, lead := range leads {
		u := merge.Update{
			Timestamp:           now(),
			ContactEmail:        "n/a",
			ContactPage:         "",
			AboutPage:           "",
			PersonalizationHook: "n/a",
		}
		_, changed := merge.Apply(lead, u)
		res.Processed++
		if changed {
			// placeholder values never change a lead; seeing one means the
			// merge policy regressed
			res.Errors = append(res.Errors, fmt.Errorf("lead %s: placeholder update reported a change", lead.LeadID))
		}
	}
	return res
}
