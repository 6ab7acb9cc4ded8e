package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/wardlink/hospital-system/internal/core/domain"
	"github.com/wardlink/hospital-system/internal/core/ports"
)

type authFixture struct {
	auth   *AuthService
	users  *stubUserRepo
	wards  *stubWardRepo
	cache  *memCache
	images *stubImages
	issuer *JWTIssuer
}

func newAuthFixture() *authFixture {
	users := newStubUserRepo()
	wards := newStubWardRepo(
		&domain.Ward{ID: "WID-1", Name: "ICU", HospitalID: "HID-1"},
		&domain.Ward{ID: "WID-DEV", Name: "Sandbox", HospitalID: domain.DevelopmentHospitalID},
	)
	cache := newMemCache()
	images := &stubImages{}
	issuer := NewJWTIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	directory := NewUserService(users, wards, cache, images, zerolog.Nop())
	auth := NewAuthService(directory, wards, NewBcryptHasher(), issuer, images, zerolog.Nop())
	return &authFixture{auth: auth, users: users, wards: wards, cache: cache, images: images, issuer: issuer}
}

func (f *authFixture) register(t *testing.T, username, password string, role domain.Role) *domain.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Password: password,
		Display:  username,
		Role:     role,
		WardID:   "WID-1",
	}, nil)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestAuthService_RegisterAndValidate(t *testing.T) {
	f := newAuthFixture()

	user := f.register(t, "alice", "pw1", domain.RoleStaff)
	if user.PasswordHash != "" {
		t.Fatalf("register leaked the password hash")
	}

	valid, err := f.auth.ValidateUser(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if valid == nil {
		t.Fatalf("expected user for correct password")
	}
	if valid.PasswordHash != "" {
		t.Fatalf("validate leaked the password hash")
	}

	wrong, err := f.auth.ValidateUser(context.Background(), "alice", "wrong")
	if err != nil {
		t.Fatalf("validate wrong password: %v", err)
	}
	if wrong != nil {
		t.Fatalf("expected nil for wrong password, got %+v", wrong)
	}
}

func TestAuthService_ValidateUnknownUser(t *testing.T) {
	f := newAuthFixture()

	user, err := f.auth.ValidateUser(context.Background(), "ghost", "whatever")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user != nil {
		t.Fatalf("unknown user must look identical to wrong password")
	}
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture()

	f.register(t, "bob", "pass1", domain.RoleStaff)
	_, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Username: "BOB", // case-insensitive clash
		Password: "pass2",
		Display:  "Bob",
		Role:     domain.RoleStaff,
		WardID:   "WID-1",
	}, nil)
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_LoginClaimsFromWard(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "carol", "s3cret", domain.RoleAdmin)

	result, err := f.auth.Login(context.Background(), user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.HospitalID != "HID-1" || result.WardID != "WID-1" {
		t.Fatalf("unexpected ward chain: hos=%s ward=%s", result.HospitalID, result.WardID)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}
	if result.AccessToken == result.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	claims, err := f.issuer.VerifyAccess(result.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.ID != user.ID || claims.Role != domain.RoleAdmin || claims.HospitalID != "HID-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_LoginUnresolvableWard(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "dave", "pass", domain.RoleStaff)
	user.WardID = "WID-MISSING"

	if _, err := f.auth.Login(context.Background(), user); err == nil {
		t.Fatalf("expected error for user without resolvable ward")
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "erin", "pass", domain.RoleService)

	result, err := f.auth.Login(context.Background(), user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := f.auth.RefreshTokens(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := f.issuer.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refreshed token: %v", err)
	}
	if claims.ID != user.ID || claims.Role != domain.RoleService {
		t.Fatalf("claims not carried over: %+v", claims)
	}
}

func TestAuthService_RefreshRejectsWrongSecret(t *testing.T) {
	f := newAuthFixture()

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "UID-x",
		"role": "SUPER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := f.auth.RefreshTokens(context.Background(), signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_RefreshRejectsExpired(t *testing.T) {
	f := newAuthFixture()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "UID-x",
		"role": "SUPER",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("refresh-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := f.auth.RefreshTokens(context.Background(), signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_ResetPasswordRoundTrip(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "frank", "oldpw", domain.RoleStaff)

	caller := domain.Claims{ID: user.ID, Role: domain.RoleStaff}
	err := f.auth.ResetPassword(context.Background(), "frank", ports.ResetPasswordInput{
		OldPassword: "oldpw",
		NewPassword: "newpw",
	}, caller)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if u, _ := f.auth.ValidateUser(context.Background(), "frank", "newpw"); u == nil {
		t.Fatalf("new password must validate")
	}
	if u, _ := f.auth.ValidateUser(context.Background(), "frank", "oldpw"); u != nil {
		t.Fatalf("old password must no longer validate")
	}
}

func TestAuthService_ResetPasswordPurgesBothKeys(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "grace", "oldpw", domain.RoleStaff)

	// Warm both single-record cache entries.
	if _, err := f.auth.ValidateUser(context.Background(), "grace", "oldpw"); err != nil {
		t.Fatalf("warm username key: %v", err)
	}
	directory := NewUserService(f.users, f.wards, f.cache, f.images, zerolog.Nop())
	if _, err := directory.FindByID(context.Background(), user.ID); err != nil {
		t.Fatalf("warm id key: %v", err)
	}
	if !f.cache.has("user:grace") || !f.cache.has("user:"+user.ID) {
		t.Fatalf("expected warm cache entries")
	}

	err := f.auth.ResetPassword(context.Background(), "grace", ports.ResetPasswordInput{
		OldPassword: "oldpw",
		NewPassword: "newpw",
	}, domain.Claims{ID: user.ID, Role: domain.RoleStaff})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}

	if f.cache.has("user:grace") {
		t.Fatalf("username-keyed cache entry must be purged")
	}
	if f.cache.has("user:" + user.ID) {
		t.Fatalf("id-keyed cache entry must be purged")
	}
}

func TestAuthService_ResetPasswordRequiresOldForNonSuper(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "henry", "oldpw", domain.RoleStaff)

	err := f.auth.ResetPassword(context.Background(), "henry", ports.ResetPasswordInput{
		NewPassword: "newpw",
	}, domain.Claims{ID: user.ID, Role: domain.RoleAdmin})
	if err != domain.ErrOldPasswordRequired {
		t.Fatalf("expected ErrOldPasswordRequired, got %v", err)
	}

	err = f.auth.ResetPassword(context.Background(), "henry", ports.ResetPasswordInput{
		OldPassword: "not-it",
		NewPassword: "newpw",
	}, domain.Claims{ID: user.ID, Role: domain.RoleAdmin})
	if err != domain.ErrOldPasswordMismatch {
		t.Fatalf("expected ErrOldPasswordMismatch, got %v", err)
	}
}

func TestAuthService_ResetPasswordSuperSkipsOld(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "iris", "oldpw", domain.RoleStaff)

	err := f.auth.ResetPassword(context.Background(), "iris", ports.ResetPasswordInput{
		NewPassword: "newpw",
	}, domain.Claims{ID: "UID-root", Role: domain.RoleSuper})
	if err != nil {
		t.Fatalf("SUPER reset without old password: %v", err)
	}
	if u, _ := f.auth.ValidateUser(context.Background(), "iris", "newpw"); u == nil {
		t.Fatalf("new password must validate after SUPER reset")
	}
}

func TestAuthService_ResetPasswordUnknownUser(t *testing.T) {
	f := newAuthFixture()

	err := f.auth.ResetPassword(context.Background(), "nobody", ports.ResetPasswordInput{
		NewPassword: "newpw",
	}, domain.Claims{ID: "UID-root", Role: domain.RoleSuper})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
