package service

import (
	"context"
	"fmt"
	"time"

	"github.com/evenbetter/dtwin-cms/internal/core"
	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
	"github.com/evenbetter/dtwin-cms/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  core.UserRepository
	Crypto AuthCrypto
	Config AuthServiceConfig
}

// AuthCrypto nests the crypto ports to keep the options struct ≤3 fields.
type AuthCrypto struct {
	Hasher ports.PasswordHasher
	Tokens ports.TokenIssuer
}

// AuthServiceConfig holds token lifetimes.
type AuthServiceConfig struct {
	// TokenTTL applies to regular logins.
	TokenTTL time.Duration
	// BootstrapTokenTTL applies to the first-admin signup.
	BootstrapTokenTTL time.Duration
}

// AuthService orchestrates login, account management, and the one-time
// admin bootstrap flow.
type AuthService struct {
	users  core.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	cfg    AuthServiceConfig
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("AuthService requires a user repository")
	}
	if opts.Crypto.Hasher == nil || opts.Crypto.Tokens == nil {
		panic("AuthService requires a password hasher and token issuer")
	}
	cfg := opts.Config
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.BootstrapTokenTTL <= 0 {
		cfg.BootstrapTokenTTL = 2 * time.Hour
	}
	return &AuthService{
		users:  opts.Users,
		hasher: opts.Crypto.Hasher,
		tokens: opts.Crypto.Tokens,
		cfg:    cfg,
	}
}

// LoginResult carries the signed token and the role for the client to store.
type LoginResult struct {
	Token string          `json:"token"`
	Role  domainauth.Role `json:"role"`
}

// Login verifies credentials and issues a bearer token.
// Bad email and bad password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.issueFor(user, s.cfg.TokenTTL)
}

// SignupAdmin creates the very first admin account. Once any admin exists
// the endpoint is permanently closed.
func (s *AuthService) SignupAdmin(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	exists, err := s.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Forbidden("admin account already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &model.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     domainauth.RoleAdmin,
	}, hash)
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflict("email already exists")
		}
		return nil, fmt.Errorf("signup admin: %w", err)
	}

	return s.issueFor(user, s.cfg.BootstrapTokenTTL)
}

// AddUser creates an account with an allowed role. Admin-gated in transport.
func (s *AuthService) AddUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, req, hash)
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflict("email already exists")
		}
		return nil, fmt.Errorf("add user: %w", err)
	}
	return user, nil
}

// ListUsers returns every dashboard account.
func (s *AuthService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// ResetPassword replaces the password for an existing account.
func (s *AuthService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	ok, err := s.users.UpdatePassword(ctx, req.Email, hash)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if !ok {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// AdminExists reports whether any admin account has been created yet.
// The setup page uses it to decide whether to show the bootstrap form.
func (s *AuthService) AdminExists(ctx context.Context) (bool, error) {
	count, err := s.users.CountByRole(ctx, string(domainauth.RoleAdmin))
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

func (s *AuthService) issueFor(user *model.User, ttl time.Duration) (*LoginResult, error) {
	token, err := s.tokens.Issue(domainauth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, ttl)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}
