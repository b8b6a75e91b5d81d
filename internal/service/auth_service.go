package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/repository"
	"github.com/dom/studio-api/internal/token"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
	// bcrypt refuses to hash longer passwords
	maxPasswordBytes = 72
)

type AuthService struct {
	admins repository.AdminRepository
	tokens *token.Service
}

func NewAuthService(admins repository.AdminRepository, tokens *token.Service) *AuthService {
	return &AuthService{
		admins: admins,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput identifies the admin by email or username; email wins when both are set
type LoginInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	Admin     *domain.Admin
	Token     string
	ExpiresAt time.Time
}

func (in RegisterInput) normalize() RegisterInput {
	return RegisterInput{
		Username: strings.TrimSpace(in.Username),
		Email:    domain.NormalizeEmail(in.Email),
		Password: in.Password,
	}
}

func (in RegisterInput) validate() error {
	v := &domain.ValidationError{}
	if len(in.Username) < minUsernameLength {
		v.Add("username", fmt.Sprintf("Username must be at least %d characters", minUsernameLength))
	}
	if !domain.IsValidEmail(in.Email) {
		v.Add("email", "Please provide a valid email")
	}
	switch {
	case len(in.Password) < minPasswordLength:
		v.Add("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	case len(in.Password) > maxPasswordBytes:
		v.Add("password", fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes))
	}
	return v.OrNil()
}

// Register creates an admin and logs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input = input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &domain.Admin{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"admin_id": admin.ID, "username": admin.Username}).Info("admin registered")
	return s.issue(admin)
}

func (s *AuthService) ensureUnique(ctx context.Context, username, email string) error {
	_, err := s.admins.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return &domain.DuplicateError{Field: "username"}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	_, err = s.admins.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return &domain.DuplicateError{Field: "email"}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := domain.NormalizeEmail(input.Email)

	v := &domain.ValidationError{}
	if username == "" && email == "" {
		v.Add("username", "Username or email is required")
	}
	if input.Password == "" {
		v.Add("password", "Password is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	var (
		admin *domain.Admin
		err   error
	)
	if email != "" {
		admin, err = s.admins.GetByEmail(ctx, email)
	} else {
		admin, err = s.admins.GetByUsername(ctx, username)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(admin, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(admin)
}

// VerifyPassword compares candidate against the stored bcrypt hash
func VerifyPassword(admin *domain.Admin, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(candidate)) == nil
}

// Authenticate resolves a bearer token to a live admin. Token errors come
// back as the token package's sentinels; an admin deleted after the token was
// issued yields ErrAdminNotFound.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Admin, error) {
	adminID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return s.GetAdmin(ctx, adminID)
}

func (s *AuthService) GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// SeedAdmin registers the bootstrap admin when the store holds no admin yet.
// It reports whether an admin was created.
func (s *AuthService) SeedAdmin(ctx context.Context, input RegisterInput) (bool, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if _, err := s.Register(ctx, input); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func (s *AuthService) issue(admin *domain.Admin) (*AuthResult, error) {
	signed, expiresAt, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Admin:     admin,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}
