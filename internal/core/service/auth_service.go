package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/ports"
)

// AuthService implements the credential lifecycle: registration, login,
// token refresh, and password reset. Lookups go through the directory so
// they stay cache-aware.
type AuthService struct {
	directory ports.UserService
	wards     ports.WardRepository
	hasher    ports.PasswordHasher
	issuer    ports.TokenIssuer
	images    ports.ImageStore
	log       zerolog.Logger
}

func NewAuthService(
	directory ports.UserService,
	wards ports.WardRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	images ports.ImageStore,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		directory: directory,
		wards:     wards,
		hasher:    hasher,
		issuer:    issuer,
		images:    images,
		log:       log,
	}
}

// Register creates a user account. The username is case-normalized before
// the duplicate check; an optional profile picture goes through the image
// store first so a failed upload aborts registration.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, image *ports.ImageUpload) (*domain.User, error) {
	username := domain.NormalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	pic := ""
	if image != nil {
		path, err := s.images.Upload(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, err
		}
		pic = s.images.ResolveURL(path)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.directory.Create(ctx, ports.CreateUserInput{
		Username:     username,
		PasswordHash: hash,
		Display:      in.Display,
		Role:         in.Role,
		Pic:          pic,
		WardID:       in.WardID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created.Sanitized(), nil
}

// ValidateUser returns the matching user with the hash stripped, or nil on
// any mismatch. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *AuthService) ValidateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Check(password, user.PasswordHash) {
		return nil, nil
	}
	return user.Sanitized(), nil
}

// Login builds token claims from the user and its ward→hospital chain and
// issues an access/refresh pair. A user without a resolvable ward is a data
// integrity fault, surfaced as an internal error.
func (s *AuthService) Login(ctx context.Context, user *domain.User) (*ports.LoginResult, error) {
	ward, err := s.wards.FindByID(ctx, user.WardID)
	if err != nil {
		return nil, fmt.Errorf("resolve ward %q for user %s: %w", user.WardID, user.ID, err)
	}

	claims := domain.Claims{
		ID:         user.ID,
		Name:       user.Display,
		Role:       user.Role,
		HospitalID: ward.HospitalID,
		WardID:     user.WardID,
	}
	pair, err := s.issuer.Issue(claims)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("hospital_id", ward.HospitalID).Msg("login")
	return &ports.LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ID:           user.ID,
		Name:         user.Display,
		HospitalID:   ward.HospitalID,
		WardID:       user.WardID,
		Role:         user.Role,
		Pic:          user.Pic,
	}, nil
}

// RefreshTokens verifies the refresh token and re-signs its claims without a
// store read. Role or ward changes therefore take effect only once the
// refresh token itself expires.
func (s *AuthService) RefreshTokens(_ context.Context, refreshToken string) (ports.TokenPair, error) {
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return s.issuer.Issue(claims)
}

// ResetPassword sets a new password for username. Non-SUPER callers must
// present a verifying old password; SUPER may reset unconditionally. The
// directory purges both single-record cache keys on success.
func (s *AuthService) ResetPassword(ctx context.Context, username string, in ports.ResetPasswordInput, caller domain.Claims) error {
	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if caller.Role != domain.RoleSuper {
		if in.OldPassword == "" {
			return domain.ErrOldPasswordRequired
		}
		if !s.hasher.Check(in.OldPassword, user.PasswordHash) {
			return domain.ErrOldPasswordMismatch
		}
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.directory.UpdatePassword(ctx, user.ID, user.Username, hash); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("caller_id", caller.ID).Msg("password reset")
	return nil
}
