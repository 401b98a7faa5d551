package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
)

// UserRepo provides database operations for dashboard accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, role, password, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var u model.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &role, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domainauth.Role(role)
	return &u, nil
}

// Create inserts a new user with a pre-hashed password.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, password, role)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		strings.TrimSpace(req.Email), passwordHash, string(req.Role),
	)
	u, err := scanUser(row)
	if err != nil {
		// Unique violations surface as conflict errors via MapDBError.
		return nil, apperrors.MapDBError(err)
	}
	return u, nil
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", apperrors.MapDBError(err))
	}
	return u, nil
}

// List retrieves all users, newest first.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", apperrors.MapDBError(err))
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CountByRole returns how many accounts hold the role.
func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", apperrors.MapDBError(err))
	}
	return count, nil
}

// UpdatePassword replaces the stored password hash for the account.
// Returns false when no account matches the email.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE email = $2`,
		passwordHash, strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", apperrors.MapDBError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	return affected > 0, nil
}
