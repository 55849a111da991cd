package legacy

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scout-engine/internal/domain"
)

// Export writes the legacy view. Callers pass leads already ordered by
// lead_id (store.ListAll), so exporting twice with no intervening writes is
// byte-identical.
func Export(w io.Writer, leads []*domain.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, l := range leads {
		if err := cw.Write(row(l)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile re-derives the file atomically: tmp write, then rename, so a
// half-written view is never observable.
func ExportFile(path string, leads []*domain.Lead) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Export(f, leads); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func row(l *domain.Lead) []string {
	score := ""
	if l.ContactScore != 0 {
		score = strconv.Itoa(l.ContactScore)
	}
	return []string{
		l.LeadID,
		l.Name,
		l.City(),
		l.Website,
		l.Domain,
		l.Provider,
		l.ContactEmail,
		l.ContactRole,
		strings.Join(l.AllEmails, EmailSep),
		l.PrimaryContact,
		l.LinkedInURL,
		l.ContactMethod,
		score,
		l.ContactPriorityLabel,
		l.ContactFormURL,
		l.ContactPage,
		l.AboutPage,
		l.PersonalizationHook,
		l.EnrichedAt,
		l.Email1Path,
		l.FollowupPath,
		l.BriefPath,
		l.Notes,
	}
}
