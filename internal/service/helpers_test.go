package service

import (
	"context"
	"testing"
	"time"

	"donation_system/internal/domain"
	"donation_system/internal/repo"
	"donation_system/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

type env struct {
	db        *gorm.DB
	donors    *DonorService
	donations *DonationService
	fid       string
}

func newEnv(t *testing.T, rdb *redis.Client) *env {
	t.Helper()
	db := testutil.NewDB(t)
	donors := repo.NewDonors(db)
	donations := repo.NewDonations(db)
	e := &env{
		db:        db,
		donors:    NewDonorService(donors, donations, rdb),
		donations: NewDonationService(donors, donations, rdb),
		fid:       testutil.NewFoundation(t, db, "Alpha").ID,
	}
	e.donations.now = func() time.Time { return fixedNow }
	return e
}

func (e *env) otherFoundation(t *testing.T, name string) string {
	t.Helper()
	return testutil.NewFoundation(t, e.db, name).ID
}

func donorInput(name, pan string) DonorInput {
	return DonorInput{
		FullName: name,
		Address1: "1 Main St",
		PAN:      pan,
		Country:  "India",
		State:    "Karnataka",
		City:     "Bengaluru",
	}
}

func (e *env) mustDonor(t *testing.T, fid, name, pan string) *domain.Donor {
	t.Helper()
	d, err := e.donors.CreateDonor(context.Background(), fid, donorInput(name, pan), "user-1")
	require.NoError(t, err)
	return d
}

func (e *env) mustCash(t *testing.T, fid, donorID string, amount float64) *domain.Donation {
	t.Helper()
	d, err := e.donations.CreateDonation(context.Background(), fid, DonationInput{
		DonorID: donorID,
		Amount:  amount,
		Type:    domain.DonationCash,
	}, "user-1")
	require.NoError(t, err)
	return d
}

func strPtr(s string) *string { return &s }

// backdate overwrites an audit timestamp without touching updated_at
func (e *env) backdate(t *testing.T, model any, id, column string, at time.Time) {
	t.Helper()
	require.NoError(t, e.db.Model(model).Where("id = ?", id).UpdateColumn(column, at).Error)
}

// hoursAfter is a fixed creation time n hours into 2024
func hoursAfter(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Hour)
}

// requireField asserts err is a validation error on the given request field
func requireField(t *testing.T, err error, path string) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrValidation)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, path, de.Path)
}
