package llm

import (
	"context"
	"fmt"

	"scout-engine/internal/domain"
)

// DryRun returns the same fallback texts the Gemini generator uses when the
// model gives nothing back. Deterministic, no network.
type DryRun struct{}

func (DryRun) Hook(_ context.Context, lead *domain.Lead, _ string) (string, error) {
	return fallbackHook(lead), nil
}

func (DryRun) EmailDraft(_ context.Context, lead *domain.Lead) (string, error) {
	return fallbackEmail(lead), nil
}

func (DryRun) FollowupDraft(_ context.Context, lead *domain.Lead, _ int) (string, error) {
	return fallbackFollowup(lead), nil
}

func (DryRun) LinkedInDraft(_ context.Context, lead *domain.Lead) (string, error) {
	return fallbackLinkedIn(lead), nil
}

func (DryRun) ContactFormDraft(_ context.Context, lead *domain.Lead) (string, error) {
	return fallbackContactForm(lead), nil
}

func (DryRun) CallBrief(_ context.Context, lead *domain.Lead) (string, error) {
	return fallbackBrief(lead), nil
}

func fallbackHook(lead *domain.Lead) string {
	return fmt.Sprintf(
		"I noticed %s highlights a strong mission for students and families in %s.",
		lead.Name, lead.City())
}

func fallbackEmail(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Hi %s team,\n\n"+
			"I noticed your school emphasizes student support and family partnership. "+
			"We help school leaders reduce routine staff workload and improve follow-through in daily operations. "+
			"If helpful, I can share a simple example tailored to your context. "+
			"Would you be open to a 15-minute call next week?\n",
		lead.Name)
}

func fallbackFollowup(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Hi %s team,\n\n"+
			"I wanted to briefly follow up in case my earlier note was buried. "+
			"We support school administrators with practical workflow improvements that help staff stay focused on students and families. "+
			"If it is useful, I can share one relevant example for your campus. "+
			"Would you be open to a 15-minute call?\n",
		lead.Name)
}

func fallbackLinkedIn(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Hi, I work with private schools like %s to reduce routine administrative load "+
			"and improve follow-through for staff and families. "+
			"If helpful, I can share one practical example relevant to your school. "+
			"Would you be open to a brief 15-minute conversation?",
		lead.Name)
}

func fallbackContactForm(lead *domain.Lead) string {
	return fmt.Sprintf(
		"Hello %s team, I am reaching out because we help school leaders reduce routine "+
			"administrative workload and improve day-to-day follow-through. "+
			"If useful, I can share one simple example tailored to your school context. "+
			"Would a 15-minute call next week be possible?",
		lead.Name)
}

func fallbackBrief(lead *domain.Lead) string {
	return fmt.Sprintf(
		"# Call Brief: %s\n\n"+
			"## Context Summary\n"+
			"- Private K-12 school in %s.\n"+
			"- Emphasis on operational consistency and family communication.\n\n"+
			"## Likely Priorities\n- Staff workload balance\n- Student support consistency\n- Family responsiveness\n\n"+
			"## Discovery Questions\n- Where does administrative follow-through break down most often?\n"+
			"- Which routines consume staff time each week?\n"+
			"- What outcomes matter most this term?\n\n"+
			"## Objection Handling\n- Keep approach practical and lightweight.\n"+
			"- Focus on existing workflows and staff capacity.\n\n"+
			"## Next-Step Ask\n- Confirm a 15-minute follow-up with key stakeholders.\n",
		lead.Name, lead.City())
}
