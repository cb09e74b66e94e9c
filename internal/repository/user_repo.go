package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (username, email, password_hash, is_admin)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	r.log.Debugf("Attempting to create user '%s'", user.Username)

	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.IsAdmin).Scan(
		&user.ID,
		&user.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// The unique index race: two registrations passing the usecase
			// pre-checks still collapse to the right taken-error here.
			if strings.Contains(pqErr.Constraint, "email") {
				r.log.Warnf("Attempted to register already used email '%s'", user.Email)
				return nil, fmt.Errorf("email '%s': %w", user.Email, domain.ErrEmailTaken)
			}
			r.log.Warnf("Attempted to register already used username '%s'", user.Username)
			return nil, fmt.Errorf("username '%s': %w", user.Username, domain.ErrUsernameTaken)
		}
		r.log.Errorf("Failed to create user '%s': %v", user.Username, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("User created with ID: %d, Username: %s", user.ID, user.Username)
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
        SELECT id, username, email, password_hash, is_admin, created_at
        FROM users
        WHERE id = $1`
	user := &domain.User{}

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("User with ID %d not found", id)
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrUserNotFound)
		}
		r.log.Errorf("Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
        SELECT id, username, email, password_hash, is_admin, created_at
        FROM users
        WHERE username = $1`
	user := &domain.User{}

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("User with username '%s' not found", username)
			return nil, fmt.Errorf("username '%s': %w", username, domain.ErrUserNotFound)
		}
		r.log.Errorf("Failed to get user by username '%s': %v", username, err)
		return nil, fmt.Errorf("could not get user by username: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT id, username, email, password_hash, is_admin, created_at
        FROM users
        WHERE LOWER(email) = LOWER($1)`
	user := &domain.User{}

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("User with email '%s' not found", email)
			return nil, fmt.Errorf("email '%s': %w", email, domain.ErrUserNotFound)
		}
		r.log.Errorf("Failed to get user by email '%s': %v", email, err)
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}
	return user, nil
}
