package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func sampleCandidate(url string) domain.Candidate {
	return domain.Candidate{
		URL:         url,
		Title:       "Software Engineer",
		Company:     "Kiwi Software Ltd",
		Location:    "Auckland CBD",
		Region:      "Auckland",
		Salary:      "$120k - $140k",
		DateListed:  "10/03/2024",
		JobType:     "Full time",
		Description: "We are looking for a software engineer to join our platform team.",
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, store.Migrate(db.Pool))
	require.NoError(t, store.Migrate(db.Pool))
}

func TestInsertAndGetByURL(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	id, err := store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/1"), now)
	require.NoError(t, err)
	assert.Positive(t, id)

	j, err := store.GetByURL(ctx, db.Pool, "https://example.com/job/1")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, id, j.ID)
	assert.Equal(t, "Software Engineer", j.Title)
	assert.True(t, j.FirstSeen.Equal(j.LastSeen))
	assert.True(t, j.IsActive)
	assert.Equal(t, domain.TriageNone, j.TriageStatus)

	// unknown URL is not an error
	j, err = store.GetByURL(ctx, db.Pool, "https://example.com/nope")
	require.NoError(t, err)
	assert.Nil(t, j)

	// empty URL never matches anything
	j, err = store.GetByURL(ctx, db.Pool, "")
	require.NoError(t, err)
	assert.Nil(t, j)
}

func TestInsert_URLUniqueness(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	_, err := store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/1"), now)
	require.NoError(t, err)

	_, err = store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/1"), now)
	assert.ErrorContains(t, err, "UNIQUE constraint failed")

	// rows without a URL may repeat freely
	_, err = store.Insert(ctx, db.Pool, sampleCandidate(""), now)
	require.NoError(t, err)
	_, err = store.Insert(ctx, db.Pool, sampleCandidate(""), now)
	require.NoError(t, err)
}

func TestFindByContent_OrderAndCaseFolding(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	older := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)

	a := sampleCandidate("")
	idOld, err := store.Insert(ctx, db.Pool, a, older)
	require.NoError(t, err)
	idNew, err := store.Insert(ctx, db.Pool, a, newer)
	require.NoError(t, err)

	rows, err := store.FindByContent(ctx, db.Pool, "software engineer", "KIWI SOFTWARE LTD", "Auckland CBD")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, idNew, rows[0].ID, "most recently seen row first")
	assert.Equal(t, idOld, rows[1].ID)

	rows, err = store.FindByContent(ctx, db.Pool, "Software Engineer", "Kiwi Software Ltd", "Wellington")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUpdate_RefreshesWithoutTouchingOwnership(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	seen := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	id, err := store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/1"), created)
	require.NoError(t, err)
	require.NoError(t, store.SetTriageStatus(ctx, db.Pool, id, domain.TriageYes))

	j, err := store.GetByURL(ctx, db.Pool, "https://example.com/job/1")
	require.NoError(t, err)
	j.Title = "Senior Software Engineer"
	require.NoError(t, store.Update(ctx, db.Pool, *j, seen))

	got, err := store.GetByURL(ctx, db.Pool, "https://example.com/job/1")
	require.NoError(t, err)
	assert.Equal(t, "Senior Software Engineer", got.Title)
	assert.True(t, got.FirstSeen.Equal(created), "first_seen is immutable")
	assert.True(t, got.LastSeen.Equal(seen))
	assert.Equal(t, domain.TriageYes, got.TriageStatus, "update never writes triage_status")
}

func TestSetTriageStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/1"), time.Now())
	require.NoError(t, err)

	require.NoError(t, store.SetTriageStatus(ctx, db.Pool, id, domain.TriageShortlist))
	j, err := store.GetByURL(ctx, db.Pool, "https://example.com/job/1")
	require.NoError(t, err)
	assert.Equal(t, domain.TriageShortlist, j.TriageStatus)

	// clearing maps back to NULL
	require.NoError(t, store.SetTriageStatus(ctx, db.Pool, id, domain.TriageNone))
	j, err = store.GetByURL(ctx, db.Pool, "https://example.com/job/1")
	require.NoError(t, err)
	assert.Equal(t, domain.TriageNone, j.TriageStatus)

	err = store.SetTriageStatus(ctx, db.Pool, 99999, domain.TriageYes)
	assert.ErrorContains(t, err, "no job with id")
}

func TestDeactivateUnseen(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	old := time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	cutoff := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/old"), old)
	require.NoError(t, err)
	_, err = store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/new"), recent)
	require.NoError(t, err)

	n, err := store.DeactivateUnseen(ctx, db.Pool, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	j, err := store.GetByURL(ctx, db.Pool, "https://example.com/job/old")
	require.NoError(t, err)
	assert.False(t, j.IsActive)

	j, err = store.GetByURL(ctx, db.Pool, "https://example.com/job/new")
	require.NoError(t, err)
	assert.True(t, j.IsActive)

	// second sweep finds nothing new
	n, err = store.DeactivateUnseen(ctx, db.Pool, cutoff)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListJobs_Filters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	eng := sampleCandidate("https://example.com/job/1")
	nurse := domain.Candidate{
		URL:         "https://example.com/job/2",
		Title:       "Registered Nurse",
		Company:     "Wellington Health",
		Location:    "Wellington Central",
		Region:      "Wellington",
		Description: "Ward nursing role.",
	}

	idEng, err := store.Insert(ctx, db.Pool, eng, now.AddDate(0, 0, -1))
	require.NoError(t, err)
	_, err = store.Insert(ctx, db.Pool, nurse, now.AddDate(0, 0, -20))
	require.NoError(t, err)
	require.NoError(t, store.SetTriageStatus(ctx, db.Pool, idEng, domain.TriageYes))

	jobs, err := store.ListJobs(ctx, db.Pool, store.ListOpts{}, now)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, idEng, jobs[0].ID, "newest first_seen first")

	jobs, err = store.ListJobs(ctx, db.Pool, store.ListOpts{Days: 7}, now)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, idEng, jobs[0].ID)

	jobs, err = store.ListJobs(ctx, db.Pool, store.ListOpts{Keyword: "Nurse"}, now)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Registered Nurse", jobs[0].Title)

	jobs, err = store.ListJobs(ctx, db.Pool, store.ListOpts{Region: "Wellington"}, now)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	jobs, err = store.ListJobs(ctx, db.Pool, store.ListOpts{Triage: "untagged"}, now)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Registered Nurse", jobs[0].Title)

	jobs, err = store.ListJobs(ctx, db.Pool, store.ListOpts{Triage: "yes"}, now)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, idEng, jobs[0].ID)

	jobs, err = store.ListJobs(ctx, db.Pool, store.ListOpts{Limit: 1}, now)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/1"), now)
	require.NoError(t, err)
	_, err = store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/2"), now.AddDate(0, 0, -3))
	require.NoError(t, err)
	_, err = store.Insert(ctx, db.Pool, sampleCandidate("https://example.com/job/3"), now.AddDate(0, 0, -30))
	require.NoError(t, err)
	_, err = store.DeactivateUnseen(ctx, db.Pool, now.AddDate(0, 0, -7))
	require.NoError(t, err)

	s, err := store.GetStats(ctx, db.Pool, now)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.NewToday)
	assert.Equal(t, 2, s.LastSevenDay)
	require.NotEmpty(t, s.TopCompanies)
	assert.Equal(t, "Kiwi Software Ltd", s.TopCompanies[0].Name)
	assert.Equal(t, 3, s.TopCompanies[0].Count)
	require.NotEmpty(t, s.TopRegions)
	assert.Equal(t, "Auckland", s.TopRegions[0].Name)
}

func TestBackfillRegions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c := sampleCandidate("https://example.com/job/1")
	c.Region = "" // pre-region row
	id, err := store.Insert(ctx, db.Pool, c, time.Now())
	require.NoError(t, err)

	n, err := store.BackfillRegions(ctx, db.Pool, func(loc string) string {
		assert.Equal(t, "Auckland CBD", loc)
		return "Auckland"
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	j, err := store.GetByURL(ctx, db.Pool, "https://example.com/job/1")
	require.NoError(t, err)
	assert.Equal(t, "Auckland", j.Region)
	assert.Equal(t, id, j.ID)
}

func TestRecordAndListRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	r := store.Run{
		ID:          "9e8c5a1e-0000-4000-8000-000000000001",
		Started:     time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		Finished:    time.Date(2024, 3, 10, 9, 1, 0, 0, time.UTC),
		Candidates:  10,
		Created:     4,
		Updated:     5,
		Fuzzy:       1,
		Failed:      1,
		Deactivated: 2,
	}
	require.NoError(t, store.RecordRun(ctx, db.Pool, r))

	runs, err := store.LastRuns(ctx, db.Pool, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r.ID, runs[0].ID)
	assert.Equal(t, 4, runs[0].Created)
	assert.EqualValues(t, 2, runs[0].Deactivated)
	assert.True(t, runs[0].Started.Equal(r.Started))
}
