package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/limfang/btoflow/internal/domain/enquiry"
	"github.com/limfang/btoflow/internal/repository"
)

func TestEnquiryRepository_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEnquiryRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	now := time.Now()
	e := &enquiry.Enquiry{
		ID:            "e1",
		ApplicantNRIC: "S2000002B",
		ProjectID:     "p1",
		Text:          "When is the showflat open?",
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, e.Text, got.Text)
	require.Nil(t, got.RepliedAt, "unanswered enquiry has no reply timestamp")

	repliedAt := time.Now()
	got.Reply = "Weekends only."
	got.RepliedBy = "S3000003C"
	got.RepliedAt = &repliedAt
	got.ModifiedAt = repliedAt
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.True(t, got.Answered())
	require.Equal(t, "Weekends only.", got.Reply)
}

func TestEnquiryRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEnquiryRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &enquiry.Enquiry{
		ID: "e1", ApplicantNRIC: "S2000002B", ProjectID: "p1",
		Text: "q", CreatedAt: now, ModifiedAt: now,
	}))

	require.NoError(t, repo.Delete(ctx, "e1"))
	_, err := repo.Get(ctx, "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "e1"), repository.ErrNotFound)
}

func TestEnquiryRepository_Listings(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEnquiryRepository(db)

	seedPerson(t, db, "S2000002B", "applicant")
	seedPerson(t, db, "S5000005E", "applicant")
	now := time.Now()
	for i, spec := range []struct{ id, nric, proj string }{
		{"e1", "S2000002B", "p1"},
		{"e2", "S2000002B", "p2"},
		{"e3", "S5000005E", "p1"},
	} {
		require.NoError(t, repo.Create(ctx, &enquiry.Enquiry{
			ID: spec.id, ApplicantNRIC: spec.nric, ProjectID: spec.proj,
			Text: "q", CreatedAt: now.Add(time.Duration(i) * time.Second), ModifiedAt: now,
		}))
	}

	mine, err := repo.ListByApplicant(ctx, "S2000002B")
	require.NoError(t, err)
	require.Len(t, mine, 2)

	onProject, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, onProject, 2)
}
