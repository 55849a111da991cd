package draft

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Delivery places a finished artifact where the operator will find it.
type Delivery interface {
	Deliver(content, path string) error
}

// ManualDelivery writes markdown for the operator to review and send by hand.
type ManualDelivery struct{}

func (ManualDelivery) Deliver(content, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644)
}

// GmailDraftDelivery is reserved for a later version; real email delivery is
// out of scope.
type GmailDraftDelivery struct{}

func (GmailDraftDelivery) Deliver(string, string) error {
	return errors.New("gmail draft delivery is not implemented")
}
