package repo

import (
	"context"
	"strings"

	"donation_system/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	Donors    = Repository[domain.Donor, *domain.Donor]
	Donations = Repository[domain.Donation, *domain.Donation]
)

func NewDonors(db *gorm.DB) *Donors {
	return New[domain.Donor](db, "Donor")
}

// NewDonations preloads the donor on every read. The preload is not filtered
// by is_deleted, so donations of a deleted donor still show who gave them.
func NewDonations(db *gorm.DB) *Donations {
	return New[domain.Donation](db, "Donation", "Donor")
}

// Users is the store for login accounts. Users are not soft-deleted.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// FindByUsername looks a user up by lower-cased username
func (u *Users) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User // Usernames are stored lower-case
	err := u.db.WithContext(ctx).Where("username = ?", strings.ToLower(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("User")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

// Create inserts user, mapping a duplicate username to Conflict
func (u *Users) Create(ctx context.Context, user *domain.User) error {
	user.Username = strings.ToLower(user.Username)
	err := u.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	// Unique index on username
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("User already exists")
	}
	return errors.Wrap(err, "create user")
}

// FoundationExists reports whether a foundation with id exists
func (u *Users) FoundationExists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := u.db.WithContext(ctx).Model(&domain.Foundation{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "find foundation")
	}
	return n > 0, nil
}

// EnsureFoundation loads the foundation named f.Name into f, creating it if missing
func (u *Users) EnsureFoundation(ctx context.Context, f *domain.Foundation) error {
	err := u.db.WithContext(ctx).Where(domain.Foundation{Name: f.Name}).FirstOrCreate(f).Error // Match by name
	return errors.Wrap(err, "ensure foundation")
}
