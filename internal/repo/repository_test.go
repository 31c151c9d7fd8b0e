package repo

import (
	"context"
	"testing"

	"donation_system/internal/domain"
	"donation_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDonor(name, pan string) *domain.Donor {
	return &domain.Donor{
		FullName: name,
		Address1: "1 Main St",
		PAN:      pan,
		Country:  "India",
		State:    "Karnataka",
		City:     "Bengaluru",
	}
}

func setup(t *testing.T) (*gorm.DB, *Donors, string) {
	t.Helper()
	db := testutil.NewDB(t)
	f := testutil.NewFoundation(t, db, "Alpha")
	return db, NewDonors(db), f.ID
}

func TestCreateStampsAudit(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	in := newDonor("Jane Doe", "ABCDE1234F")
	in.ID = "caller-chosen"
	in.FoundationID = "someone-else"
	in.IsDeleted = true
	in.CreatedBy = "spoofed"

	donor, err := donors.Create(ctx, fid, in, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, donor.ID)
	assert.NotEqual(t, "caller-chosen", donor.ID)
	assert.Equal(t, fid, donor.FoundationID)
	assert.False(t, donor.IsDeleted)
	assert.Equal(t, "user-1", donor.CreatedBy)
	assert.Equal(t, "user-1", donor.UpdatedBy)
	assert.False(t, donor.CreatedAt.IsZero())
	assert.Equal(t, "Jane Doe", donor.FullName)
}

func TestSoftDeleteHidesRow(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	donor, err := donors.Create(ctx, fid, newDonor("Jane Doe", "ABCDE1234F"), "user-1")
	require.NoError(t, err)

	require.NoError(t, donors.SoftDelete(ctx, fid, donor.ID, "admin-1"))

	_, err = donors.FindOne(ctx, fid, donor.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := donors.List(ctx, fid, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)

	total, err := donors.Count(ctx, fid)
	require.NoError(t, err)
	assert.Zero(t, total)

	trashed, err := donors.ListTrashed(ctx, fid)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.True(t, trashed[0].IsDeleted)
	assert.Equal(t, "admin-1", trashed[0].UpdatedBy)
	assert.Equal(t, "user-1", trashed[0].CreatedBy)

	// Deleting twice is NotFound and leaves the row as it was
	err = donors.SoftDelete(ctx, fid, donor.ID, "admin-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	trashed, err = donors.ListTrashed(ctx, fid)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", trashed[0].UpdatedBy)
}

func TestRestore(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	donor, err := donors.Create(ctx, fid, newDonor("Jane Doe", "ABCDE1234F"), "user-1")
	require.NoError(t, err)

	_, err = donors.Restore(ctx, fid, donor.ID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "restoring an active row")

	require.NoError(t, donors.SoftDelete(ctx, fid, donor.ID, "admin-1"))
	restored, err := donors.Restore(ctx, fid, donor.ID, "admin-2")
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Equal(t, "admin-2", restored.UpdatedBy)

	_, err = donors.FindOne(ctx, fid, donor.ID)
	assert.NoError(t, err)
}

func TestUpdateKeepsImmutableColumns(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	donor, err := donors.Create(ctx, fid, newDonor("Jane Doe", "ABCDE1234F"), "user-1")
	require.NoError(t, err)

	updated, err := donors.Update(ctx, fid, donor.ID, map[string]any{
		"city":          "Mysuru",
		"foundation_id": "other",
		"is_deleted":    true,
		"created_by":    "spoofed",
		"id":            "new-id",
	}, "user-2")
	require.NoError(t, err)
	assert.Equal(t, donor.ID, updated.ID)
	assert.Equal(t, "Mysuru", updated.City)
	assert.Equal(t, fid, updated.FoundationID)
	assert.False(t, updated.IsDeleted)
	assert.Equal(t, "user-1", updated.CreatedBy)
	assert.Equal(t, "user-2", updated.UpdatedBy)
}

func TestUpdateDeletedRowIsNotFound(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	donor, err := donors.Create(ctx, fid, newDonor("Jane Doe", "ABCDE1234F"), "user-1")
	require.NoError(t, err)
	require.NoError(t, donors.SoftDelete(ctx, fid, donor.ID, "admin-1"))

	_, err = donors.Update(ctx, fid, donor.ID, map[string]any{"city": "Mysuru"}, "user-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForeignFoundationIsInvisible(t *testing.T) {
	db, donors, fidA := setup(t)
	fidB := testutil.NewFoundation(t, db, "Beta").ID
	ctx := context.Background()

	donor, err := donors.Create(ctx, fidA, newDonor("Jane Doe", "ABCDE1234F"), "user-a")
	require.NoError(t, err)

	_, err = donors.FindOne(ctx, fidB, donor.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = donors.Update(ctx, fidB, donor.ID, map[string]any{"city": "X"}, "user-b")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = donors.SoftDelete(ctx, fidB, donor.ID, "user-b")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := donors.List(ctx, fidB, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list)

	// Untouched in its own foundation
	got, err := donors.FindOne(ctx, fidA, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru", got.City)
}

func TestListPaging(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := donors.Create(ctx, fid, newDonor(name+" Donor", "ABCDE1234F"), "user-1")
		require.NoError(t, err)
	}

	page, err := donors.List(ctx, fid, ListOptions{Offset: 2, Limit: 2, Order: "donors.full_name ASC"})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "C Donor", page[0].FullName)
	assert.Equal(t, "D Donor", page[1].FullName)

	total, err := donors.Count(ctx, fid, func(db *gorm.DB) *gorm.DB {
		return db.Where("donors.full_name <> ?", "A Donor")
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestFindFirst(t *testing.T) {
	_, donors, fid := setup(t)
	ctx := context.Background()

	_, err := donors.Create(ctx, fid, newDonor("Jane Doe", "ABCDE1234F"), "user-1")
	require.NoError(t, err)

	got, err := donors.FindFirst(ctx, fid, func(db *gorm.DB) *gorm.DB {
		return db.Where("donors.pan = ?", "ABCDE1234F")
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.FullName)

	_, err = donors.FindFirst(ctx, fid, func(db *gorm.DB) *gorm.DB {
		return db.Where("donors.pan = ?", "ZZZZZ9999Z")
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Donor not found")
}

func TestDonationsPreloadDonor(t *testing.T) {
	db, donors, fid := setup(t)
	donations := NewDonations(db)
	ctx := context.Background()

	donor, err := donors.Create(ctx, fid, newDonor("Jane Doe", "ABCDE1234F"), "user-1")
	require.NoError(t, err)

	donation, err := donations.Create(ctx, fid, &domain.Donation{
		DonorID:          donor.ID,
		Amount:           500,
		Type:             domain.DonationCash,
		DonationReceived: domain.ReceiptPending,
	}, "user-1")
	require.NoError(t, err)
	require.NotNil(t, donation.Donor)
	assert.Equal(t, "Jane Doe", donation.Donor.FullName)

	// The donor stays visible on donations after it is deleted
	require.NoError(t, donors.SoftDelete(ctx, fid, donor.ID, "admin-1"))
	got, err := donations.FindOne(ctx, fid, donation.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Donor)
	assert.True(t, got.Donor.IsDeleted)
}
