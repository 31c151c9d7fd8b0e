package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"donation_system/internal/domain"
	"donation_system/internal/repo"
	"donation_system/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var panPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// countTTL bounds how stale a cached dashboard count may be
const countTTL = 60 * time.Second

// DonorInput is the body of POST /donors
type DonorInput struct {
	FullName string `json:"fullName" binding:"required,min=2"`
	Address1 string `json:"address1" binding:"required"`
	Address2 string `json:"address2"`
	PAN      string `json:"pan" binding:"required"`
	Phone    string `json:"phone"`
	Country  string `json:"country" binding:"required,min=2"`
	State    string `json:"state" binding:"required,min=2"`
	City     string `json:"city" binding:"required"`
}

// DonorUpdate is the body of PUT /donors/:id; nil fields are left unchanged
type DonorUpdate struct {
	FullName *string `json:"fullName" binding:"omitempty,min=2"`
	Address1 *string `json:"address1" binding:"omitempty,min=1"`
	Address2 *string `json:"address2"`
	PAN      *string `json:"pan"`
	Phone    *string `json:"phone"`
	Country  *string `json:"country" binding:"omitempty,min=2"`
	State    *string `json:"state" binding:"omitempty,min=2"`
	City     *string `json:"city" binding:"omitempty,min=1"`
}

func checkPAN(raw string) (string, error) {
	pan := domain.NormalizePAN(raw)
	if !panPattern.MatchString(pan) {
		return "", domain.FieldError("body", "pan", "PAN must be exactly 10 alphanumeric characters")
	}
	return pan, nil
}

// DonorService manages donors of a foundation
type DonorService struct {
	donors    *repo.Donors
	donations *repo.Donations
	rdb       *redis.Client // optional count cache
}

func NewDonorService(donors *repo.Donors, donations *repo.Donations, rdb *redis.Client) *DonorService {
	return &DonorService{donors: donors, donations: donations, rdb: rdb}
}

func (s *DonorService) invalidateCount(ctx context.Context, foundationID string) {
	if err := utils.DeleteCache(ctx, s.rdb, utils.DonorCountKey(foundationID)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate donor count cache")
	}
}

// CreateDonor stores a new donor under foundationID
func (s *DonorService) CreateDonor(ctx context.Context, foundationID string, in DonorInput, actorID string) (*domain.Donor, error) {
	pan, err := checkPAN(in.PAN) // Stored trimmed and upper-case
	if err != nil {
		return nil, err
	}
	donor, err := s.donors.Create(ctx, foundationID, &domain.Donor{
		FullName: strings.TrimSpace(in.FullName),
		Address1: in.Address1,
		Address2: in.Address2,
		PAN:      pan,
		Phone:    in.Phone,
		Country:  in.Country,
		State:    in.State,
		City:     in.City,
	}, actorID)
	if err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, foundationID) // Dashboard count is now stale
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donor_id":      donor.ID,
		"actor_id":      actorID,
	}).Info("Donor created")
	return donor, nil
}

// GetDonors returns one page of active donors, oldest first
func (s *DonorService) GetDonors(ctx context.Context, foundationID string, pageNo, pageSize int) (*Page[domain.Donor], error) {
	if err := checkPage(pageNo, pageSize); err != nil {
		return nil, err
	}
	total, err := s.donors.Count(ctx, foundationID)
	if err != nil {
		return nil, err
	}
	offset, ok := pageOffset(pageNo, pageSize)
	if !ok {
		return &Page[domain.Donor]{Total: total, Items: []domain.Donor{}}, nil // far past the end
	}
	items, err := s.donors.List(ctx, foundationID, repo.ListOptions{
		Offset: offset,
		Limit:  pageSize,
		Order:  "donors.created_at ASC, donors.id ASC",
	})
	if err != nil {
		return nil, err
	}
	return &Page[domain.Donor]{Total: total, Items: items}, nil
}

func (s *DonorService) GetDonorByID(ctx context.Context, foundationID, donorID string) (*domain.Donor, error) {
	return s.donors.FindOne(ctx, foundationID, donorID)
}

// UpdateDonor applies the non-nil fields of in. The foundation never changes.
func (s *DonorService) UpdateDonor(ctx context.Context, foundationID, donorID string, in DonorUpdate, actorID string) (*domain.Donor, error) {
	fields := map[string]any{} // Columns to write
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	if in.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*in.FullName)
	}
	set("address1", in.Address1)
	set("address2", in.Address2)
	set("phone", in.Phone)
	set("country", in.Country)
	set("state", in.State)
	set("city", in.City)
	if in.PAN != nil {
		pan, err := checkPAN(*in.PAN)
		if err != nil {
			return nil, err
		}
		fields["pan"] = pan
	}
	return s.donors.Update(ctx, foundationID, donorID, fields, actorID)
}

// DeleteDonor soft-deletes a donor. Their donations are kept as they are.
func (s *DonorService) DeleteDonor(ctx context.Context, foundationID, donorID, actorID string) error {
	if err := s.donors.SoftDelete(ctx, foundationID, donorID, actorID); err != nil {
		return err
	}
	s.invalidateCount(ctx, foundationID)
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donor_id":      donorID,
		"actor_id":      actorID,
	}).Info("Donor deleted")
	return nil
}

func (s *DonorService) RestoreDonor(ctx context.Context, foundationID, donorID, actorID string) (*domain.Donor, error) {
	donor, err := s.donors.Restore(ctx, foundationID, donorID, actorID)
	if err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, foundationID)
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donor_id":      donorID,
		"actor_id":      actorID,
	}).Info("Donor restored")
	return donor, nil
}

func (s *DonorService) ListTrashedDonors(ctx context.Context, foundationID string) ([]domain.Donor, error) {
	return s.donors.ListTrashed(ctx, foundationID)
}

// CountDonors returns the number of active donors, served from Redis when cached
func (s *DonorService) CountDonors(ctx context.Context, foundationID string) (int64, error) {
	key := utils.DonorCountKey(foundationID)
	var total int64
	// Try the cache first
	if found, err := utils.GetCache(ctx, s.rdb, key, &total); err == nil && found {
		return total, nil
	}
	total, err := s.donors.Count(ctx, foundationID) // Cache miss
	if err != nil {
		return 0, err
	}
	if err := utils.SetCache(ctx, s.rdb, key, total, countTTL); err != nil {
		logrus.WithError(err).Warn("Failed to cache donor count")
	}
	return total, nil
}

// IsExistByPan finds the active donor whose PAN equals pan after trimming,
// ignoring case. It returns nil, nil when there is none.
func (s *DonorService) IsExistByPan(ctx context.Context, foundationID, pan string) (*domain.Donor, error) {
	normalized := domain.NormalizePAN(pan)
	if normalized == "" {
		return nil, domain.FieldError("query", "pan", "PAN is required")
	}
	donor, err := s.donors.FindFirst(ctx, foundationID, func(db *gorm.DB) *gorm.DB {
		return db.Where("UPPER(donors.pan) = ?", normalized).Order("donors.created_at ASC")
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil // No such donor is not an error here
		}
		return nil, err
	}
	return donor, nil
}

// GetDonationsByDonorID lists the donor's active donations, newest first
func (s *DonorService) GetDonationsByDonorID(ctx context.Context, foundationID, donorID string) ([]domain.Donation, error) {
	return s.donations.List(ctx, foundationID, repo.ListOptions{
		Order: newestDonationsFirst,
		Scopes: []repo.Scope{func(db *gorm.DB) *gorm.DB {
			return db.Where("donations.donor_id = ?", donorID)
		}},
	})
}
