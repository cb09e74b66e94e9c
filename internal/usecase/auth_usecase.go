package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) (*domain.User, error)
	// Login resolves the identifier as a username first and falls back to a
	// case-insensitive email lookup. Every failure path returns
	// ErrInvalidCredentials so responses never reveal which part was wrong.
	Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type authUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewAuthUseCase(repo domain.UserRepository, logger *logrus.Logger) AuthUseCase {
	return &authUseCase{
		userRepo: repo,
		log:      logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, username, email, password, confirmPassword string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if confirmPassword == "" {
		missing = append(missing, "confirm_password")
	}
	if len(missing) > 0 {
		uc.log.Warnf("Use Case: Registration failed - missing fields: %v", missing)
		return nil, domain.NewValidationError("missing required fields", missing...)
	}

	if password != confirmPassword {
		uc.log.Warn("Use Case: Registration failed - passwords do not match")
		return nil, domain.NewValidationError("passwords do not match", "confirm_password")
	}
	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Registration failed - invalid email format: %s", email)
		return nil, domain.NewValidationError("invalid email format", "email")
	}
	if len(password) < 8 {
		uc.log.Warn("Use Case: Registration failed - password too short")
		return nil, domain.NewValidationError("password must be at least 8 characters long", "password")
	}

	if _, err := uc.userRepo.GetUserByUsername(ctx, username); err == nil {
		uc.log.Warnf("Use Case: Registration failed - username '%s' already taken", username)
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		uc.log.Errorf("Use Case: Error checking username '%s': %v", username, err)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := uc.userRepo.GetUserByEmail(ctx, email); err == nil {
		uc.log.Warnf("Use Case: Registration failed - email '%s' already registered", email)
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		uc.log.Errorf("Use Case: Error checking email '%s': %v", email, err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for '%s': %v", username, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	// The pre-checks race against concurrent registrations; the unique
	// indexes resolve the race and the repository maps the violation back
	// to the same taken-errors.
	createdUser, err := uc.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		if !errors.Is(err, domain.ErrUsernameTaken) && !errors.Is(err, domain.ErrEmailTaken) {
			uc.log.Errorf("Use Case: Repository failed to create user '%s': %v", username, err)
		}
		return nil, err
	}

	uc.log.Infof("Use Case: User registered with ID %d, username '%s'", createdUser.ID, createdUser.Username)
	return createdUser, nil
}

func (uc *authUseCase) Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, error) {
	identifier := strings.TrimSpace(usernameOrEmail)
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetUserByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = uc.userRepo.GetUserByEmail(ctx, strings.ToLower(identifier))
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.log.Warnf("Use Case: Login failed - no account for '%s'", identifier)
			return nil, domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error retrieving user '%s' during login: %v", identifier, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Login failed - wrong password for user ID %d", user.ID)
			return nil, domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user ID %d: %v", user.ID, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	uc.log.Infof("Use Case: User %d ('%s') logged in", user.ID, user.Username)
	return user, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
	}
	user, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			uc.log.Errorf("Use Case: Failed to get user %d: %v", id, err)
		}
		return nil, err
	}
	return user, nil
}

// isValidEmail provides a basic shape check; real deliverability is not this
// package's business.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
