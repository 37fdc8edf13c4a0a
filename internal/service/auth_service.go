package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService provides registration and login
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	limiter  *LoginLimiter
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, limiter *LoginLimiter) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		limiter:  limiter,
	}
}

// normalizeEmail trims and lowercases an email for storage and lookups
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) []string {
	var problems []string
	if len(password) < 8 {
		problems = append(problems, "password must be at least 8 characters")
	}
	if len(password) > 128 {
		problems = append(problems, "password must not exceed 128 characters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		problems = append(problems, "password must contain a lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		problems = append(problems, "password must contain a digit")
	}
	return problems
}

// validateNewAccount checks a registration payload and returns the
// normalized email and name on success
func validateNewAccount(req model.RegisterRequest) (email, name, role string, err error) {
	email = normalizeEmail(req.Email)
	name = strings.TrimSpace(req.Name)

	if email == "" || req.Password == "" || name == "" {
		return "", "", "", newValidationError("name, email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return "", "", "", newValidationError("email address is not valid")
	}
	if len(name) < 2 {
		return "", "", "", newValidationError("name must be at least 2 characters")
	}
	if len(name) > 100 {
		return "", "", "", newValidationError("name must not exceed 100 characters")
	}
	if problems := validatePassword(req.Password); len(problems) > 0 {
		return "", "", "", newValidationError("password does not meet the security requirements", problems...)
	}

	role = req.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) {
		return "", "", "", newValidationError("role must be ADMIN or CUSTOMER")
	}
	return email, name, role, nil
}

// Register creates a new account. The role defaults to CUSTOMER when the
// request does not specify one.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email, name, role, err := validateNewAccount(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index can still trip between the lookup and the insert
		if err == repository.ErrDuplicateEmail {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a session token. Failed attempts
// are counted per email; past the limit the attempt is rejected before the
// password is even checked.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", newValidationError("email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, "", newValidationError("email address is not valid")
	}

	if s.limiter.Blocked(email) {
		return nil, "", ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		s.limiter.RecordFailure(email)
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.limiter.RecordFailure(email)
		return nil, "", ErrInvalidCredentials
	}

	s.limiter.Clear(email)

	token, err := s.jwtUtil.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
