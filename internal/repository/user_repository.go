package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"annonsplats/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (*domain.User, error)
	ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error
	SetEmailVerificationToken(ctx context.Context, userID uuid.UUID, token string, sentAt time.Time) error
	GetUserByEmailVerificationToken(ctx context.Context, token string) (*domain.User, error)
	VerifyEmail(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

var errUserNotFound = errors.New("user not found")

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, username, email_name, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Username, user.EmailName, user.IsEmailVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = :username, user_description = :user_description,
			municipality = :municipality, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.touch(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		userID, passwordHash)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	return r.touch(ctx, `UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		userID, avatarURL)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1) AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, username, exclude)
	return exists, err
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.touch(ctx, query, userID, token, expiresAt)
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE password_reset_token = $1 AND password_reset_expires_at > NOW()`, token)
}

func (r *userRepository) ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.touch(ctx, query, userID)
}

func (r *userRepository) SetEmailVerificationToken(ctx context.Context, userID uuid.UUID, token string, sentAt time.Time) error {
	query := `
		UPDATE users
		SET email_verification_token = $2, email_verification_sent_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.touch(ctx, query, userID, token, sentAt)
}

func (r *userRepository) GetUserByEmailVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email_verification_token = $1`, token)
}

func (r *userRepository) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET is_email_verified = TRUE, email_verification_token = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.touch(ctx, query, userID)
}

// touch runs an UPDATE ... RETURNING updated_at and reports a missing row.
func (r *userRepository) touch(ctx context.Context, query string, args ...interface{}) error {
	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errUserNotFound
	}
	return err
}
