package domain

import "fmt"

// ArtifactKind is the closed set of outreach artifacts tracked per lead.
type ArtifactKind string

const (
	KindFirstDraft ArtifactKind = "first_draft"
	KindFollowup   ArtifactKind = "followup"
	KindBrief      ArtifactKind = "brief"
)

func ParseArtifactKind(s string) (ArtifactKind, error) {
	switch ArtifactKind(s) {
	case KindFirstDraft, KindFollowup, KindBrief:
		return ArtifactKind(s), nil
	}
	return "", fmt.Errorf("unknown artifact kind %q", s)
}
