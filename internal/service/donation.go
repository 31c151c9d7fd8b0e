package service

import (
	"context"
	"io"
	"strings"
	"time"

	"donation_system/internal/domain"
	"donation_system/internal/report"
	"donation_system/internal/repo"
	"donation_system/internal/utils"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const newestDonationsFirst = "donations.created_at DESC, donations.id DESC"

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// DonationInput is the body of POST /donations
type DonationInput struct {
	DonorID          string               `json:"donorId" binding:"required"`
	Amount           float64              `json:"amount" binding:"required,gt=0,lte=999999999.99"`
	Type             domain.DonationType  `json:"type" binding:"required,oneof=CASH CHEQUE ONLINE"`
	BankName         string               `json:"bankName"`
	UTR              string               `json:"utr"`
	IFSC             string               `json:"ifsc"`
	DonationDate     *string              `json:"donationDate"`
	TransactionDate  *string              `json:"transactionDate"`
	DonationReceived domain.ReceiptStatus `json:"donationReceived" binding:"omitempty,oneof=PENDING RECEIVED"`
}

// DonationUpdate is the body of PUT /donations/:id. It has no field for
// foundationId, donorId, createdAt or isDeleted, so those are dropped on decode.
type DonationUpdate struct {
	Amount           *float64              `json:"amount" binding:"omitempty,gt=0,lte=999999999.99"`
	Type             *domain.DonationType  `json:"type" binding:"omitempty,oneof=CASH CHEQUE ONLINE"`
	BankName         *string               `json:"bankName"`
	UTR              *string               `json:"utr"`
	IFSC             *string               `json:"ifsc"`
	DonationDate     *string               `json:"donationDate"`
	TransactionDate  *string               `json:"transactionDate"`
	DonationReceived *domain.ReceiptStatus `json:"donationReceived" binding:"omitempty,oneof=PENDING RECEIVED"`
}

// ExportFilter narrows the CSV report by donation date, both ends inclusive
type ExportFilter struct {
	From *time.Time
	To   *time.Time
}

// checkDonation enforces the rules every stored donation satisfies
func checkDonation(d *domain.Donation) error {
	if d.Amount <= 0 {
		return domain.FieldError("body", "amount", "Amount must be > 0")
	}
	if d.Amount > report.MaxAmount { // Largest amount a receipt can spell
		return domain.FieldError("body", "amount", "Amount must be at most 999999999.99")
	}
	if !d.Type.Valid() {
		return domain.FieldError("body", "type", "Invalid donation type")
	}
	if !d.DonationReceived.Valid() {
		return domain.FieldError("body", "donationReceived", "must be one of PENDING, RECEIVED")
	}
	// Bank details are required for cheque and online donations
	if d.Type != domain.DonationCash {
		for _, f := range []struct{ path, value, label string }{
			{"bankName", d.BankName, "Bank name"},
			{"utr", d.UTR, "UTR"},
			{"ifsc", d.IFSC, "IFSC"},
		} {
			if strings.TrimSpace(f.value) == "" {
				return domain.FieldError("body", f.path, f.label+" is required unless type is CASH")
			}
		}
	}
	// transactionDate is set exactly when the money has been received
	received := d.DonationReceived == domain.ReceiptReceived
	if received && d.TransactionDate == nil {
		return domain.FieldError("body", "transactionDate", "transactionDate is required when donationReceived is RECEIVED")
	}
	if !received && d.TransactionDate != nil {
		return domain.FieldError("body", "transactionDate", "transactionDate must be empty unless donationReceived is RECEIVED")
	}
	return nil
}

// DonationService manages donations of a foundation
type DonationService struct {
	donors    *repo.Donors
	donations *repo.Donations
	rdb       *redis.Client // optional count cache
	now       func() time.Time
}

func NewDonationService(donors *repo.Donors, donations *repo.Donations, rdb *redis.Client) *DonationService {
	return &DonationService{donors: donors, donations: donations, rdb: rdb, now: time.Now}
}

func (s *DonationService) invalidateCount(ctx context.Context, foundationID string) {
	if err := utils.DeleteCache(ctx, s.rdb, utils.DonationCountKey(foundationID)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate donation count cache")
	}
}

// CreateDonation records a donation for an active donor of the same foundation
func (s *DonationService) CreateDonation(ctx context.Context, foundationID string, in DonationInput, actorID string) (*domain.Donation, error) {
	// Check the donor is active in the caller's foundation
	if _, err := s.donors.FindOne(ctx, foundationID, in.DonorID); err != nil {
		if isNotFound(err) {
			return nil, domain.InvalidReference("Donor not found or does not belong to this foundation")
		}
		return nil, err
	}

	donationDate, err := parseDate("donationDate", in.DonationDate)
	if err != nil {
		return nil, err
	}
	if donationDate == nil {
		now := s.now() // Defaults to today
		donationDate = &now
	}
	txDate, err := parseDate("transactionDate", in.TransactionDate)
	if err != nil {
		return nil, err
	}
	status := in.DonationReceived
	if status == "" {
		status = domain.ReceiptPending // Not received until someone says so
	}

	donation := &domain.Donation{
		DonorID:          in.DonorID,
		Amount:           in.Amount,
		Type:             in.Type,
		BankName:         strings.TrimSpace(in.BankName),
		UTR:              strings.TrimSpace(in.UTR),
		IFSC:             strings.ToUpper(strings.TrimSpace(in.IFSC)),
		DonationDate:     *donationDate,
		TransactionDate:  txDate,
		DonationReceived: status,
	}
	if err := checkDonation(donation); err != nil {
		return nil, err
	}

	created, err := s.donations.Create(ctx, foundationID, donation, actorID)
	if err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, foundationID) // Dashboard count is now stale
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donation_id":   created.ID,
		"donor_id":      created.DonorID,
		"amount":        created.Amount,
		"type":          created.Type,
		"actor_id":      actorID,
	}).Info("Donation created")
	return created, nil
}

// GetDonations returns one page of active donations, newest first
func (s *DonationService) GetDonations(ctx context.Context, foundationID string, pageNo, pageSize int) (*Page[domain.Donation], error) {
	if err := checkPage(pageNo, pageSize); err != nil {
		return nil, err
	}
	total, err := s.donations.Count(ctx, foundationID)
	if err != nil {
		return nil, err
	}
	offset, ok := pageOffset(pageNo, pageSize)
	if !ok {
		return &Page[domain.Donation]{Total: total, Items: []domain.Donation{}}, nil // far past the end
	}
	items, err := s.donations.List(ctx, foundationID, repo.ListOptions{
		Offset: offset,
		Limit:  pageSize,
		Order:  newestDonationsFirst,
	})
	if err != nil {
		return nil, err
	}
	return &Page[domain.Donation]{Total: total, Items: items}, nil
}

func (s *DonationService) GetDonationByID(ctx context.Context, foundationID, donationID string) (*domain.Donation, error) {
	return s.donations.FindOne(ctx, foundationID, donationID)
}

// UpdateDonation applies the non-nil fields of in and re-checks the merged
// donation. Moving a donation back to PENDING without a transactionDate in the
// same request clears the stored transactionDate.
func (s *DonationService) UpdateDonation(ctx context.Context, foundationID, donationID string, in DonationUpdate, actorID string) (*domain.Donation, error) {
	existing, err := s.donations.FindOne(ctx, foundationID, donationID)
	if err != nil {
		return nil, err
	}
	merged := *existing       // Validated as a whole before saving
	fields := map[string]any{} // Columns to write

	if in.Amount != nil {
		merged.Amount = *in.Amount
		fields["amount"] = *in.Amount
	}
	if in.Type != nil {
		merged.Type = *in.Type
		fields["type"] = *in.Type
	}
	if in.BankName != nil {
		merged.BankName = strings.TrimSpace(*in.BankName)
		fields["bank_name"] = merged.BankName
	}
	if in.UTR != nil {
		merged.UTR = strings.TrimSpace(*in.UTR)
		fields["utr"] = merged.UTR
	}
	if in.IFSC != nil {
		merged.IFSC = strings.ToUpper(strings.TrimSpace(*in.IFSC))
		fields["ifsc"] = merged.IFSC
	}
	if in.DonationDate != nil {
		d, err := parseDate("donationDate", in.DonationDate)
		if err != nil {
			return nil, err
		}
		if d != nil {
			merged.DonationDate = *d
			fields["donation_date"] = *d
		}
	}
	if in.DonationReceived != nil {
		merged.DonationReceived = *in.DonationReceived
		fields["donation_received"] = *in.DonationReceived
	}
	if in.TransactionDate != nil {
		tx, err := parseDate("transactionDate", in.TransactionDate)
		if err != nil {
			return nil, err
		}
		merged.TransactionDate = tx
		fields["transaction_date"] = tx
	} else if in.DonationReceived != nil && *in.DonationReceived == domain.ReceiptPending {
		merged.TransactionDate = nil
		fields["transaction_date"] = nil
	}

	// Re-check the rules against the merged donation
	if err := checkDonation(&merged); err != nil {
		return nil, err
	}
	updated, err := s.donations.Update(ctx, foundationID, donationID, fields, actorID)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donation_id":   donationID,
		"actor_id":      actorID,
	}).Info("Donation updated")
	return updated, nil
}

// DeleteDonation soft-deletes a donation
func (s *DonationService) DeleteDonation(ctx context.Context, foundationID, donationID, actorID string) error {
	if err := s.donations.SoftDelete(ctx, foundationID, donationID, actorID); err != nil {
		return err
	}
	s.invalidateCount(ctx, foundationID)
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donation_id":   donationID,
		"actor_id":      actorID,
	}).Info("Donation deleted")
	return nil
}

func (s *DonationService) RestoreDonation(ctx context.Context, foundationID, donationID, actorID string) (*domain.Donation, error) {
	donation, err := s.donations.Restore(ctx, foundationID, donationID, actorID)
	if err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, foundationID)
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"donation_id":   donationID,
		"actor_id":      actorID,
	}).Info("Donation restored")
	return donation, nil
}

// SearchDonations matches donors by fullName and/or pan, case-insensitive
// substrings, within the caller's foundation. Newest donations first.
func (s *DonationService) SearchDonations(ctx context.Context, foundationID, fullName, pan string) ([]domain.Donation, error) {
	fullName, pan = strings.TrimSpace(fullName), strings.TrimSpace(pan)
	if fullName == "" && pan == "" {
		return nil, domain.FieldError("query", "", "Either name or pan must be provided")
	}
	return s.donations.List(ctx, foundationID, repo.ListOptions{
		Order: newestDonationsFirst,
		Scopes: []repo.Scope{func(db *gorm.DB) *gorm.DB {
			// Match on the donor, not the donation
			db = db.Joins("JOIN donors ON donors.id = donations.donor_id AND donors.foundation_id = donations.foundation_id")
			if fullName != "" {
				db = db.Where("LOWER(donors.full_name) LIKE ? ESCAPE '!'", likePattern(fullName))
			}
			if pan != "" {
				db = db.Where("LOWER(donors.pan) LIKE ? ESCAPE '!'", likePattern(pan))
			}
			return db
		}},
	})
}

// MarkPrinted flags the receipt of an active donation as printed
func (s *DonationService) MarkPrinted(ctx context.Context, foundationID, donationID, actorID string) (*domain.Donation, error) {
	return s.donations.Update(ctx, foundationID, donationID, map[string]any{"is_printed": true}, actorID)
}

// CountDonations returns the number of active donations, served from Redis when cached
func (s *DonationService) CountDonations(ctx context.Context, foundationID string) (int64, error) {
	key := utils.DonationCountKey(foundationID)
	var total int64
	// Try the cache first
	if found, err := utils.GetCache(ctx, s.rdb, key, &total); err == nil && found {
		return total, nil
	}
	total, err := s.donations.Count(ctx, foundationID) // Cache miss
	if err != nil {
		return 0, err
	}
	if err := utils.SetCache(ctx, s.rdb, key, total, countTTL); err != nil {
		logrus.WithError(err).Warn("Failed to cache donation count")
	}
	return total, nil
}

func (s *DonationService) ListTrashedDonations(ctx context.Context, foundationID string) ([]domain.Donation, error) {
	return s.donations.ListTrashed(ctx, foundationID)
}

// Receipt returns the printable receipt of an active donation
func (s *DonationService) Receipt(ctx context.Context, foundationID, donationID string) (*report.Receipt, error) {
	donation, err := s.donations.FindOne(ctx, foundationID, donationID)
	if err != nil {
		return nil, err
	}
	return report.NewReceipt(donation, s.now()) // Issued today
}

// ExportDonations writes every active donation matching f to w as CSV,
// most recent donation date first
func (s *DonationService) ExportDonations(ctx context.Context, foundationID string, f ExportFilter, w io.Writer) error {
	donations, err := s.donations.List(ctx, foundationID, repo.ListOptions{
		Order: "donations.donation_date DESC, donations.id DESC",
		Scopes: []repo.Scope{func(db *gorm.DB) *gorm.DB {
			if f.From != nil {
				db = db.Where("donations.donation_date >= ?", *f.From)
			}
			if f.To != nil {
				db = db.Where("donations.donation_date <= ?", *f.To)
			}
			return db
		}},
	})
	if err != nil {
		return err
	}
	return report.WriteDonationsCSV(w, donations)
}
