package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout-engine/internal/domain"
	"scout-engine/internal/merge"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "scout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsert_InsertAndGet(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	id, changed, err := db.Upsert(ctx, "", merge.Update{
		Name:      "Riverside Academy",
		Website:   "https://riversideacademy.org",
		Domain:    "riversideacademy.org",
		Provider:  "serpapi",
		AllEmails: []string{"info@riversideacademy.org"},
		Extras:    map[string]string{"city": "Downey, CA"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.True(t, changed)

	got, err := db.Get(ctx, id)
	require.NoError(t, err)
	want := &domain.Lead{
		LeadID:    id,
		Name:      "Riverside Academy",
		Website:   "https://riversideacademy.org",
		Domain:    "riversideacademy.org",
		Provider:  "serpapi",
		AllEmails: []string{"info@riversideacademy.org"},
		Extras:    map[string]string{"city": "Downey, CA"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored lead mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsert_SameUpdateIsIdempotent(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	u := merge.Update{Name: "Riverside Academy", Domain: "riversideacademy.org"}
	id, _, err := db.Upsert(ctx, "", u)
	require.NoError(t, err)

	id2, changed, err := db.Upsert(ctx, id, u)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.False(t, changed)
}

func TestUpsert_MergesThroughPolicy(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	id, _, err := db.Upsert(ctx, "", merge.Update{
		Name:         "Riverside Academy",
		ContactEmail: "info@riversideacademy.org",
	})
	require.NoError(t, err)

	// placeholder update must not clear the stored email
	_, changed, err := db.Upsert(ctx, id, merge.Update{ContactEmail: "n/a"})
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := db.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "info@riversideacademy.org", got.ContactEmail)
}

func TestUpsert_UnknownIDMintsFreshOne(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	// ids from a hand-edited file that the store never issued are not reused
	id, changed, err := db.Upsert(ctx, "bogus-id", merge.Update{Name: "Lakeside Prep"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, "bogus-id", id)

	_, err = db.Get(ctx, "bogus-id")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGet_NotFound(t *testing.T) {
	db := openTest(t)
	_, err := db.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpsert_DomainUniqueness(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	_, _, err := db.Upsert(ctx, "", merge.Update{
		Name:   "Riverside Academy",
		Domain: "riversideacademy.org",
	})
	require.NoError(t, err)

	_, _, err = db.Upsert(ctx, "", merge.Update{
		Name:   "The Riverside School", // a resolver miss must still not fork the row
		Domain: "riversideacademy.org",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConstraintViolation))

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpsert_EmptyDomainsDoNotCollide(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	_, _, err := db.Upsert(ctx, "", merge.Update{Name: "Riverside Academy"})
	require.NoError(t, err)
	_, _, err = db.Upsert(ctx, "", merge.Update{Name: "Lakeside Prep"})
	require.NoError(t, err)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListAll_OrderedByLeadID(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Alpha Prep", "Beta Prep", "Gamma Prep"} {
		id, _, err := db.Upsert(ctx, "", merge.Update{Name: name})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	leads, err := db.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	var listed []string
	for i, l := range leads {
		listed = append(listed, l.LeadID)
		if i > 0 {
			assert.Less(t, leads[i-1].LeadID, l.LeadID)
		}
	}
	assert.ElementsMatch(t, ids, listed)
}

func TestOpen_SecondOpenIsRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in use")
}
