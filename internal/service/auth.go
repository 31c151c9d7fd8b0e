package service

import (
	"context"
	"regexp"
	"time"

	"donation_system/internal/domain"
	"donation_system/internal/repo"
	"donation_system/internal/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]{3,64}$`)

// RegisterInput is the body of POST /auth/register. Only the first role is used.
type RegisterInput struct {
	Username string        `json:"username" binding:"required"`
	Password string        `json:"password" binding:"required"`
	Roles    []domain.Role `json:"roles"`
}

// LoginInput is the body of POST /auth/login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthService registers users and issues tokens
type AuthService struct {
	users     *repo.Users
	secret    string
	tokenTTL  time.Duration
	dummyHash []byte // compared against when the user does not exist
}

func NewAuthService(users *repo.Users, secret string, tokenTTL time.Duration) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL, dummyHash: dummy}
}

// RegisterUser creates a user in foundationID and returns its public projection
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput, foundationID string) (*domain.UserSummary, error) {
	if !usernamePattern.MatchString(in.Username) {
		return nil, domain.FieldError("body", "username", "Username must be 3-64 letters, digits, '_' or '.'")
	}
	if len(in.Password) < 8 || len(in.Password) > 72 {
		return nil, domain.FieldError("body", "password", "Password must be 8-72 characters")
	}
	role := domain.RoleUser // Default role
	if len(in.Roles) > 0 {
		role = in.Roles[0]
	}
	if !role.Valid() {
		return nil, domain.FieldError("body", "roles.0", "Invalid role")
	}
	// Check the foundation exists
	ok, err := s.users.FoundationExists(ctx, foundationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.InvalidReference("Foundation not found")
	}

	// Check the username is free
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.Conflict("User already exists")
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost) // Hash password
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		FoundationID: foundationID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundationID,
		"user_id":       user.ID,
		"role":          role,
	}).Info("User registered")
	return &domain.UserSummary{ID: user.ID, Username: user.Username}, nil
}

// AuthenticateUser checks credentials and returns a signed token. Unknown
// users and wrong passwords fail with the same Unauthorized error.
func (s *AuthService) AuthenticateUser(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if !isNotFound(err) {
			return "", err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password)) // keep timing uniform
		return "", domain.ErrUnauthorized
	}
	// Compare password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := utils.GenerateJWT(user, s.secret, s.tokenTTL) // Generate JWT
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	logrus.WithFields(logrus.Fields{
		"user_id":       user.ID,
		"foundation_id": user.FoundationID,
	}).Info("User logged in")
	return token, nil
}

// CreateFoundationAdmin is used by the bootstrap seed: it creates the
// foundation if needed and an admin user in it when the username is free.
func (s *AuthService) CreateFoundationAdmin(ctx context.Context, foundation *domain.Foundation, username, password string) error {
	if err := s.users.EnsureFoundation(ctx, foundation); err != nil {
		return err
	}
	_, err := s.RegisterUser(ctx, RegisterInput{
		Username: username,
		Password: password,
		Roles:    []domain.Role{domain.RoleAdmin},
	}, foundation.ID)
	if errors.Is(err, domain.ErrConflict) {
		return nil // Admin already seeded
	}
	return err
}
