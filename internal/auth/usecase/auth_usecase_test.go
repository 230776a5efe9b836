package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	authdto "campusbuddy-backend/internal/auth/dto"
	"campusbuddy-backend/pkg/config"
	"campusbuddy-backend/pkg/ratelimit"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepository for usecase tests.
type fakeUserRepo struct {
	users map[string]*authdomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*authdomain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *authdomain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return authdomain.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID.Hex()] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id, name string, college authdomain.College) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.Name = name
	u.College = college
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, search string, skip, limit int64) ([]*authdomain.User, int64, error) {
	var out []*authdomain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) PushRefreshToken(ctx context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return authdomain.ErrUserNotFound
	}
	u.RefreshTokens = append(u.RefreshTokens, token)
	return nil
}

func (f *fakeUserRepo) PullRefreshToken(ctx context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return authdomain.ErrUserNotFound
	}
	kept := u.RefreshTokens[:0]
	for _, t := range u.RefreshTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.RefreshTokens = kept
	return nil
}

func (f *fakeUserRepo) HasRefreshToken(ctx context.Context, id, token string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	for _, t := range u.RefreshTokens {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) SetBlocked(ctx context.Context, id string, blocked bool) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.IsBlocked = blocked
	return u, nil
}

func (f *fakeUserRepo) SetPremium(ctx context.Context, id string, premium bool, expiry *time.Time) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.IsPremium = premium
	u.PremiumExpiry = expiry
	return u, nil
}

func (f *fakeUserRepo) SetRole(ctx context.Context, id, role string) (*authdomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	u.Role = role
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return authdomain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func newTestUsecase(repo *fakeUserRepo, cfg *config.Config) AuthUsecase {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAuthUsecase(repo, ratelimit.Noop{}, cfg, log)
}

func signupReq() *authdto.SignupRequest {
	return &authdto.SignupRequest{
		Name:        "Asha",
		Email:       "a@x.com",
		Password:    "secret123",
		CollegeName: "State College",
	}
}

func TestSignupThenLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUsecase(repo, testConfig())
	ctx := context.Background()

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if signup.User.Role != authdomain.RoleStudent {
		t.Fatalf("expected student role, got %s", signup.User.Role)
	}

	login, err := uc.Login(ctx, &authdto.LoginRequest{Email: "a@x.com", Password: "secret123"}, "")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	if login.RefreshToken == signup.RefreshToken {
		t.Fatalf("expected a new refresh token on login")
	}

	// Both sessions are honored until revoked.
	for _, token := range []string{signup.RefreshToken, login.RefreshToken} {
		access, err := uc.Refresh(ctx, token)
		if err != nil {
			t.Fatalf("refresh error: %v", err)
		}
		user, err := uc.ValidateToken(ctx, access)
		if err != nil {
			t.Fatalf("validate error: %v", err)
		}
		if user.ID != signup.User.ID {
			t.Fatalf("refreshed token resolves to wrong user")
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	if _, err := uc.Signup(ctx, signupReq(), ""); err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if _, err := uc.Signup(ctx, signupReq(), ""); !errors.Is(err, authdomain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	if _, err := uc.Signup(ctx, signupReq(), ""); err != nil {
		t.Fatalf("signup error: %v", err)
	}

	_, err := uc.Login(ctx, &authdto.LoginRequest{Email: "a@x.com", Password: "wrongpass"}, "")
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = uc.Login(ctx, &authdto.LoginRequest{Email: "nobody@x.com", Password: "secret123"}, "")
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUsecase(repo, testConfig())
	ctx := context.Background()

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if _, err := repo.SetBlocked(ctx, signup.User.ID.Hex(), true); err != nil {
		t.Fatalf("block error: %v", err)
	}

	// Correct password must not matter.
	_, err = uc.Login(ctx, &authdto.LoginRequest{Email: "a@x.com", Password: "secret123"}, "")
	if !errors.Is(err, authdomain.ErrBlocked) {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if err := uc.Logout(ctx, signup.RefreshToken); err != nil {
		t.Fatalf("logout error: %v", err)
	}

	if _, err := uc.Refresh(ctx, signup.RefreshToken); !errors.Is(err, authdomain.ErrInvalidToken) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	if err := uc.Logout(ctx, ""); err != nil {
		t.Fatalf("logout with no token: %v", err)
	}
	if err := uc.Logout(ctx, "garbage.token.value"); err != nil {
		t.Fatalf("logout with invalid token: %v", err)
	}

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if err := uc.Logout(ctx, signup.RefreshToken); err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if err := uc.Logout(ctx, signup.RefreshToken); err != nil {
		t.Fatalf("second logout error: %v", err)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAccessExpiry = -time.Minute
	uc := newTestUsecase(newFakeUserRepo(), cfg)
	ctx := context.Background()

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := uc.ValidateToken(ctx, signup.AccessToken); !errors.Is(err, authdomain.ErrInvalidToken) {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestValidateTokenForDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newTestUsecase(repo, testConfig())
	ctx := context.Background()

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if err := repo.Delete(ctx, signup.User.ID.Hex()); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	if _, err := uc.ValidateToken(ctx, signup.AccessToken); !errors.Is(err, authdomain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRefreshDoesNotRotate(t *testing.T) {
	uc := newTestUsecase(newFakeUserRepo(), testConfig())
	ctx := context.Background()

	signup, err := uc.Signup(ctx, signupReq(), "")
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := uc.Refresh(ctx, signup.RefreshToken); err != nil {
		t.Fatalf("first refresh error: %v", err)
	}
	// The same refresh token stays valid after use.
	if _, err := uc.Refresh(ctx, signup.RefreshToken); err != nil {
		t.Fatalf("second refresh error: %v", err)
	}
}

type blockedLimiter struct{}

func (blockedLimiter) Enforce(ctx context.Context, key string) error {
	return ratelimit.ErrLimited
}

func TestLoginRateLimited(t *testing.T) {
	repo := newFakeUserRepo()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	uc := NewAuthUsecase(repo, blockedLimiter{}, testConfig(), log)

	_, err := uc.Login(context.Background(), &authdto.LoginRequest{Email: "a@x.com", Password: "secret123"}, "1.2.3.4")
	if !errors.Is(err, ratelimit.ErrLimited) {
		t.Fatalf("expected ErrLimited, got %v", err)
	}
}

func TestSignupRateLimited(t *testing.T) {
	repo := newFakeUserRepo()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	uc := NewAuthUsecase(repo, blockedLimiter{}, testConfig(), log)

	// A saturated limiter must stop account creation, not just login.
	_, err := uc.Signup(context.Background(), signupReq(), "1.2.3.4")
	if !errors.Is(err, ratelimit.ErrLimited) {
		t.Fatalf("expected ErrLimited, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("throttled signup created an account")
	}
}
