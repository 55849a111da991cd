// Package draft turns enriched leads into outreach artifacts: first drafts,
// follow-ups, and call briefs. Artifact paths follow
// <artifact_dir>/<lead_id>_<kind>[_<variant>].md and are tracked in the
// ledger; a recorded pair means regeneration, which is surfaced, not blocked.
package draft

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"scout-engine/internal/domain"
	"scout-engine/internal/ledger"
	"scout-engine/internal/llm"
	"scout-engine/internal/merge"
	"scout-engine/internal/store"
)

type Drafter struct {
	DB       *store.DB
	Ledger   *ledger.Ledger
	Gen      llm.ContentGenerator
	Delivery Delivery
	Dir      string
	DryRun   bool
	Log      *zap.SugaredLogger
}

func (d *Drafter) path(leadID string, kind domain.ArtifactKind, variant string) string {
	name := leadID + "_" + string(kind)
	if variant != "" {
		name += "_" + variant
	}
	return filepath.Join(d.Dir, name+".md")
}

// FirstDrafts routes leads to the right opening artifact by contact tier,
// highest contact score first. Returns how many leads got a draft.
func (d *Drafter) FirstDrafts(ctx context.Context, limit int) (int, error) {
	leads, err := d.DB.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].ContactScore > leads[j].ContactScore
	})

	count := 0
	for _, lead := range leads {
		if count >= limit {
			break
		}
		wrote, err := d.firstDraftOne(ctx, lead)
		if err != nil {
			d.Log.Warnw("draft failed", "lead", lead.LeadID, "school", lead.Name, "err", err)
			continue
		}
		if wrote {
			count++
		}
	}
	return count, nil
}

func (d *Drafter) firstDraftOne(ctx context.Context, lead *domain.Lead) (bool, error) {
	tier := lead.ContactPriorityLabel
	if tier == "" {
		tier = "Tier 5"
	}
	method := lead.ContactMethod
	if method == "" {
		method = "none"
	}

	if tier == "Tier 5" && method == "phone_only" {
		return false, nil
	}

	if err := d.surfacePrior(ctx, lead.LeadID, domain.KindFirstDraft); err != nil {
		return false, err
	}

	var primary string
	switch tier {
	case "Tier 1", "Tier 3":
		content, err := d.Gen.EmailDraft(ctx, lead)
		if err != nil {
			return false, err
		}
		primary = d.path(lead.LeadID, domain.KindFirstDraft, "")
		if err := d.deliver(content, primary); err != nil {
			return false, err
		}
	case "Tier 4":
		content, err := d.Gen.ContactFormDraft(ctx, lead)
		if err != nil {
			return false, err
		}
		primary = d.path(lead.LeadID, domain.KindFirstDraft, "contact_form")
		if err := d.deliver(content, primary); err != nil {
			return false, err
		}
	}

	// high tiers also get a LinkedIn variant when we know the profile
	if (tier == "Tier 1" || tier == "Tier 2") && lead.LinkedInURL != "" {
		content, err := d.Gen.LinkedInDraft(ctx, lead)
		if err != nil {
			return false, err
		}
		if err := d.deliver(content, d.path(lead.LeadID, domain.KindFirstDraft, "linkedin")); err != nil {
			return false, err
		}
	}

	// Tier 2 has no primary yet; fall back to email when we have an address
	if primary == "" && (tier == "Tier 1" || tier == "Tier 2") && lead.ContactEmail != "" {
		content, err := d.Gen.EmailDraft(ctx, lead)
		if err != nil {
			return false, err
		}
		primary = d.path(lead.LeadID, domain.KindFirstDraft, "")
		if err := d.deliver(content, primary); err != nil {
			return false, err
		}
	}

	if primary == "" {
		return false, nil
	}
	return true, d.record(ctx, lead.LeadID, domain.KindFirstDraft, primary,
		merge.Update{Email1Path: primary})
}

// Followups writes a follow-up draft for every lead that already has a first
// draft on record.
func (d *Drafter) Followups(ctx context.Context, days int) (int, error) {
	leads, err := d.DB.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, lead := range leads {
		has, err := d.Ledger.Has(ctx, lead.LeadID, domain.KindFirstDraft)
		if err != nil {
			return count, err
		}
		if !has && lead.Email1Path == "" {
			continue
		}
		if err := d.surfacePrior(ctx, lead.LeadID, domain.KindFollowup); err != nil {
			return count, err
		}

		content, err := d.Gen.FollowupDraft(ctx, lead, days)
		if err != nil {
			d.Log.Warnw("followup failed", "lead", lead.LeadID, "err", err)
			continue
		}
		path := d.path(lead.LeadID, domain.KindFollowup, fmt.Sprintf("day%d", days))
		if err := d.deliver(content, path); err != nil {
			d.Log.Warnw("followup delivery failed", "lead", lead.LeadID, "err", err)
			continue
		}
		if err := d.record(ctx, lead.LeadID, domain.KindFollowup, path,
			merge.Update{FollowupPath: path}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Brief generates the call brief for one lead and returns its path.
func (d *Drafter) Brief(ctx context.Context, leadID string) (string, error) {
	lead, err := d.DB.Get(ctx, leadID)
	if err != nil {
		return "", err
	}
	if err := d.surfacePrior(ctx, leadID, domain.KindBrief); err != nil {
		return "", err
	}

	content, err := d.Gen.CallBrief(ctx, lead)
	if err != nil {
		return "", err
	}
	path := d.path(leadID, domain.KindBrief, "")
	if err := d.deliver(content, path); err != nil {
		return "", err
	}
	return path, d.record(ctx, leadID, domain.KindBrief, path,
		merge.Update{BriefPath: path})
}

// surfacePrior tells the operator a prior artifact exists so regeneration is
// a decision, not an accident.
func (d *Drafter) surfacePrior(ctx context.Context, leadID string, kind domain.ArtifactKind) error {
	prior, err := d.Ledger.Get(ctx, leadID, kind)
	if err != nil {
		return err
	}
	if prior != "" {
		d.Log.Infow("regenerating artifact", "lead", leadID, "kind", string(kind), "prior", prior)
	}
	return nil
}

func (d *Drafter) deliver(content, path string) error {
	if d.DryRun {
		d.Log.Infow("dry-run; would write artifact", "path", path)
		return nil
	}
	return d.Delivery.Deliver(content, path)
}

// record updates ledger and lead pointer together. Dry runs record nothing.
func (d *Drafter) record(ctx context.Context, leadID string, kind domain.ArtifactKind, path string, u merge.Update) error {
	if d.DryRun {
		return nil
	}
	if err := d.Ledger.Record(ctx, leadID, kind, path); err != nil {
		return err
	}
	if _, _, err := d.DB.Upsert(ctx, leadID, u); err != nil {
		return fmt.Errorf("record %s path: %w", strings.ToLower(string(kind)), err)
	}
	return nil
}
