package legacy

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout-engine/internal/domain"
	"scout-engine/internal/identity"
	"scout-engine/internal/merge"
	"scout-engine/internal/store"
)

func openTest(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "scout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seed(t *testing.T, db *store.DB) []string {
	t.Helper()
	ctx := context.Background()

	a, _, err := db.Upsert(ctx, "", merge.Update{
		Name:                 "Riverside Academy",
		Website:              "https://riversideacademy.org",
		Domain:               "riversideacademy.org",
		Provider:             "serpapi",
		ContactEmail:         "info@riversideacademy.org",
		AllEmails:            []string{"info@riversideacademy.org", "principal@riversideacademy.org"},
		ContactScore:         80,
		ContactPriorityLabel: "Tier 1",
		EnrichedAt:           "2026-08-01T00:00:00Z",
		Extras: map[string]string{
			"city":         "Downey, CA",
			"source_query": "Private school Downey CA", // no legacy column carries this
		},
	})
	require.NoError(t, err)

	b, _, err := db.Upsert(ctx, "", merge.Update{
		Name:   "Lakeside Prep",
		Domain: "lakesideprep.org",
		Notes:  "site has a comma, and a \"quote\"",
		Extras: map[string]string{"city": "Downey, CA"},
	})
	require.NoError(t, err)
	return []string{a, b}
}

func TestExport_HeaderAndCityColumn(t *testing.T) {
	db := openTest(t)
	seed(t, db)

	leads, err := db.ListAll(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, leads))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.Contains(t, buf.String(), "Downey, CA")
	assert.Contains(t, buf.String(), "info@riversideacademy.org; principal@riversideacademy.org")
}

func TestRoundTrip_ImportOfExportChangesNothing(t *testing.T) {
	db := openTest(t)
	ids := seed(t, db)
	ctx := context.Background()

	before, err := db.ListAll(ctx)
	require.NoError(t, err)

	csvPath := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, ExportFile(csvPath, before))

	res := identity.NewResolver(0.90)
	sum, err := ImportFile(ctx, db, res, csvPath)
	require.NoError(t, err)
	assert.Empty(t, sum.Errors)
	assert.Equal(t, 0, sum.Skipped)

	after, err := db.ListAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("round trip altered canonical state (-before +after):\n%s", diff)
	}
	// extras with no legacy column survive the trip
	riverside, err := db.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Private school Downey CA", riverside.Extras["source_query"])

	// and a second export is byte-identical
	var first, second bytes.Buffer
	require.NoError(t, Export(&first, before))
	require.NoError(t, Export(&second, after))
	assert.Equal(t, first.String(), second.String())
}

func TestImport_RowWithoutLeadIDResolvesByDomain(t *testing.T) {
	db := openTest(t)
	ids := seed(t, db)
	ctx := context.Background()

	csv := strings.Join(Columns, ",") + "\n" +
		",Riverside Academy,\"Downey, CA\",,riversideacademy.org,,hand@riversideacademy.org,,,,,,,,,,,,,,,,\n"

	rows, rowErrs, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)

	sum := Apply(ctx, db, identity.NewResolver(0.90), rows)
	assert.Equal(t, 1, sum.Applied)

	got, err := db.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "hand@riversideacademy.org", got.ContactEmail)
}

func TestImport_ReorderedColumnsStillLoad(t *testing.T) {
	db := openTest(t)
	ids := seed(t, db)
	ctx := context.Background()

	csv := "contact_email,domain,school_name\n" +
		"edited@lakesideprep.org,lakesideprep.org,Lakeside Prep\n"

	sum := applyCSV(t, ctx, db, csv)
	assert.Equal(t, 1, sum.Applied)

	got, err := db.Get(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "edited@lakesideprep.org", got.ContactEmail)
}

func TestImport_UnresolvableRowIsReportedNotFatal(t *testing.T) {
	db := openTest(t)
	seed(t, db)
	ctx := context.Background()

	csv := strings.Join(Columns, ",") + "\n" +
		",,\"Downey, CA\",,,,,,,,,,,,,,,,,,,,\n" + // no id, name, or domain
		",Lakeside Prep,,,lakesideprep.org,,,,,,,,,,,,,,,,,,\n"

	sum := applyCSV(t, ctx, db, csv)
	assert.Equal(t, 1, sum.Applied)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.Errors, 1)
	assert.True(t, errors.Is(sum.Errors[0].Err, domain.ErrUnresolvableRow))
	assert.Equal(t, 2, sum.Errors[0].Line)
}

func TestImport_BadContactScoreIsReported(t *testing.T) {
	db := openTest(t)
	seed(t, db)
	ctx := context.Background()

	csv := "lead_id,school_name,domain,contact_score\n" +
		",Lakeside Prep,lakesideprep.org,eighty\n"

	sum := applyCSV(t, ctx, db, csv)
	assert.Equal(t, 0, sum.Applied)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0].Error(), "contact_score")
}

func TestImportFile_MissingFileImportsNothing(t *testing.T) {
	db := openTest(t)
	sum, err := ImportFile(context.Background(), db, identity.NewResolver(0.90),
		filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Zero(t, sum.Applied)
	assert.Empty(t, sum.Errors)
}

func TestExportFile_Atomic(t *testing.T) {
	db := openTest(t)
	seed(t, db)

	leads, err := db.ListAll(context.Background())
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "data", "leads.csv")
	require.NoError(t, ExportFile(path, leads))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), Columns[0]))
}

func applyCSV(t *testing.T, ctx context.Context, db *store.DB, csv string) Summary {
	t.Helper()
	rows, rowErrs, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	sum := Apply(ctx, db, identity.NewResolver(0.90), rows)
	for _, re := range rowErrs {
		sum.Errors = append(sum.Errors, re)
		sum.Skipped++
	}
	return sum
}
