// Package llm generates outreach prose. The engine only depends on the
// ContentGenerator interface; the Gemini client and the deterministic dry-run
// implementation both satisfy it, so dry runs exercise the same flows without
// network calls.
package llm

import (
	"context"
	"fmt"

	"scout-engine/internal/domain"
)

type ContentGenerator interface {
	Hook(ctx context.Context, lead *domain.Lead, pageText string) (string, error)
	EmailDraft(ctx context.Context, lead *domain.Lead) (string, error)
	FollowupDraft(ctx context.Context, lead *domain.Lead, days int) (string, error)
	LinkedInDraft(ctx context.Context, lead *domain.Lead) (string, error)
	ContactFormDraft(ctx context.Context, lead *domain.Lead) (string, error)
	CallBrief(ctx context.Context, lead *domain.Lead) (string, error)
}

func hookPrompt(lead *domain.Lead, pageText string) string {
	if len(pageText) > 2500 {
		pageText = pageText[:2500]
	}
	return fmt.Sprintf(
		"Write one sentence for a private K-12 school administrator as a personalization hook. "+
			"Keep it factual and specific based on this content:\n"+
			"School: %s\nCity: %s\nContent: %s",
		lead.Name, lead.City(), pageText)
}

func emailPrompt(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Write an outreach email in markdown for a school administrator. "+
			"Constraints: 60-90 words, no acronyms, no pricing, no timeline promises, "+
			"one call to action for a 15-minute call, professional school-administrator language.\n"+
			"School: %s\nPersonalization hook: %s",
		lead.Name, lead.PersonalizationHook)
}

func followupPrompt(lead *domain.Lead, days int) string {
	return fmt.Sprintf(
		"Write a polite follow-up email in markdown for a school administrator. "+
			"Constraints: 60-90 words, no acronyms, no pricing, no timeline promises, "+
			"one call to action for a 15-minute call.\n"+
			"School: %s\nDays since initial outreach: %d\nPersonalization hook: %s",
		lead.Name, days, lead.PersonalizationHook)
}

func linkedinPrompt(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Write a concise LinkedIn outreach message for a private K-12 school decision maker. "+
			"Constraints: 45-70 words, professional tone, one call to action for a 15-minute call.\n"+
			"School: %s\nPersonalization hook: %s",
		lead.Name, lead.PersonalizationHook)
}

func contactFormPrompt(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Write a contact-form-safe outreach message for a private K-12 school. "+
			"Constraints: plain text, 50-80 words, no markdown, one call to action for a 15-minute call.\n"+
			"School: %s\nPersonalization hook: %s",
		lead.Name, lead.PersonalizationHook)
}

func briefPrompt(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Create a concise call brief in markdown for preparing a first conversation with a "+
			"private K-12 school administrator. Include: context summary, likely priorities, "+
			"discovery questions, objection handling, and next-step ask.\n"+
			"School: %s\nCity: %s\nHook: %s",
		lead.Name, lead.City(), lead.PersonalizationHook)
}
