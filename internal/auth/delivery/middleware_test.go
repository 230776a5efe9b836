package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdomain "campusbuddy-backend/internal/auth/domain"
	authdto "campusbuddy-backend/internal/auth/dto"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubAuthUsecase serves a fixed user (or error) to the middleware.
type stubAuthUsecase struct {
	user *authdomain.User
	err  error
}

func (s *stubAuthUsecase) Signup(ctx context.Context, req *authdto.SignupRequest, ip string) (*authdto.TokenResponse, error) {
	return nil, nil
}

func (s *stubAuthUsecase) Login(ctx context.Context, req *authdto.LoginRequest, ip string) (*authdto.TokenResponse, error) {
	return nil, nil
}

func (s *stubAuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return "", nil
}

func (s *stubAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

func (s *stubAuthUsecase) UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	return nil, nil
}

func (s *stubAuthUsecase) ValidateToken(ctx context.Context, token string) (*authdomain.User, error) {
	return s.user, s.err
}

func testUser() *authdomain.User {
	return &authdomain.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha",
		Email: "a@x.com",
		Role:  authdomain.RoleStudent,
	}
}

func newTestRouter(stub *stubAuthUsecase, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{Authenticate(stub)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(AccessTokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingToken(t *testing.T) {
	r := newTestRouter(&stubAuthUsecase{user: testUser()})

	if w := doGet(t, r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r := newTestRouter(&stubAuthUsecase{err: authdomain.ErrInvalidToken})

	if w := doGet(t, r, "bad-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateUserGone(t *testing.T) {
	r := newTestRouter(&stubAuthUsecase{err: authdomain.ErrUserNotFound})

	if w := doGet(t, r, "stale-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticateAttachesUser(t *testing.T) {
	user := testUser()
	r := newTestRouter(&stubAuthUsecase{user: user})

	w := doGet(t, r, "good-token")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if want := user.ID.Hex(); !strings.Contains(w.Body.String(), want) {
		t.Fatalf("expected body to contain %s, got %s", want, w.Body.String())
	}
}

func TestAdminOnly(t *testing.T) {
	student := testUser()
	r := newTestRouter(&stubAuthUsecase{user: student}, AdminOnly())
	if w := doGet(t, r, "token"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", w.Code)
	}

	admin := testUser()
	admin.Role = authdomain.RoleAdmin
	r = newTestRouter(&stubAuthUsecase{user: admin}, AdminOnly())
	if w := doGet(t, r, "token"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestNotBlocked(t *testing.T) {
	blocked := testUser()
	blocked.IsBlocked = true
	r := newTestRouter(&stubAuthUsecase{user: blocked}, NotBlocked())
	if w := doGet(t, r, "token"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for blocked user, got %d", w.Code)
	}

	r = newTestRouter(&stubAuthUsecase{user: testUser()}, NotBlocked())
	if w := doGet(t, r, "token"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPremiumRequired(t *testing.T) {
	free := testUser()
	r := newTestRouter(&stubAuthUsecase{user: free}, PremiumRequired())
	if w := doGet(t, r, "token"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without premium, got %d", w.Code)
	}

	expired := testUser()
	expired.IsPremium = true
	past := time.Now().Add(-time.Hour)
	expired.PremiumExpiry = &past
	r = newTestRouter(&stubAuthUsecase{user: expired}, PremiumRequired())
	if w := doGet(t, r, "token"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with expired premium, got %d", w.Code)
	}

	active := testUser()
	active.IsPremium = true
	future := time.Now().Add(time.Hour)
	active.PremiumExpiry = &future
	r = newTestRouter(&stubAuthUsecase{user: active}, PremiumRequired())
	if w := doGet(t, r, "token"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with active premium, got %d", w.Code)
	}
}
