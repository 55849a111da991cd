package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"scout-engine/internal/domain"
)

// Gemini generates outreach content through the Google GenAI API. Any empty
// model answer falls back to the deterministic templates, so drafting never
// produces an empty artifact.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required unless running with --dry-run")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) complete(ctx context.Context, prompt, fallback string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fallback, nil
	}
	return text, nil
}

func (g *Gemini) Hook(ctx context.Context, lead *domain.Lead, pageText string) (string, error) {
	return g.complete(ctx, hookPrompt(lead, pageText), fallbackHook(lead))
}

func (g *Gemini) EmailDraft(ctx context.Context, lead *domain.Lead) (string, error) {
	return g.complete(ctx, emailPrompt(lead), fallbackEmail(lead))
}

func (g *Gemini) FollowupDraft(ctx context.Context, lead *domain.Lead, days int) (string, error) {
	return g.complete(ctx, followupPrompt(lead, days), fallbackFollowup(lead))
}

func (g *Gemini) LinkedInDraft(ctx context.Context, lead *domain.Lead) (string, error) {
	return g.complete(ctx, linkedinPrompt(lead), fallbackLinkedIn(lead))
}

func (g *Gemini) ContactFormDraft(ctx context.Context, lead *domain.Lead) (string, error) {
	return g.complete(ctx, contactFormPrompt(lead), fallbackContactForm(lead))
}

func (g *Gemini) CallBrief(ctx context.Context, lead *domain.Lead) (string, error) {
	return g.complete(ctx, briefPrompt(lead), fallbackBrief(lead))
}
