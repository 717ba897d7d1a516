package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artconnect/artconnect-api/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const userColumns = `id, fullname, email, password_hash, type, image, created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a user and fills in its creation time
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, fullname, email, password_hash, type, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(
		ctx,
		&user.CreatedAt,
		query,
		user.ID,
		user.Fullname,
		user.Email,
		user.PasswordHash,
		user.Type,
		user.Image,
	)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err), zap.String("email", user.Email))
		return err
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get user by ID", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	return &user, nil
}

// UpdateImage replaces the stored profile image. It reports false when the
// user does not exist.
func (r *UserRepository) UpdateImage(ctx context.Context, id string, image string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET image = $2 WHERE id = $1`, id, image)
	if err != nil {
		r.logger.Error("failed to update user image", zap.Error(err), zap.String("id", id))
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByIDs retrieves the users with the given IDs
func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) ORDER BY fullname`

	users := []model.User{}
	if err := r.db.SelectContext(ctx, &users, query, pq.Array(ids)); err != nil {
		r.logger.Error("failed to list users by IDs", zap.Error(err))
		return nil, err
	}

	return users, nil
}
