package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jkennedy2004/StokyGesti-n/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRepo struct {
	user *User
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if r.user != nil && strings.EqualFold(r.user.Email, email) {
		return r.user, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewTokenManager(client, time.Hour), testLogger())
}

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        "admin@stoky.test",
		PasswordHash: string(hash),
		Active:       true,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService(t, &stubRepo{user: testUser(t, "correcthorse")})
	handler := NewHandler(testLogger(), svc)
	router := chi.NewRouter()
	handler.MountRoutes(router)

	body := `{"email":"admin@stoky.test","password":"correcthorse"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"token"`)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := newTestService(t, &stubRepo{user: testUser(t, "correcthorse")})
	handler := NewHandler(testLogger(), svc)
	router := chi.NewRouter()
	handler.MountRoutes(router)

	body := `{"email":"admin@stoky.test","password":"wrongwrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	user := testUser(t, "correcthorse")
	user.Active = false
	svc := newTestService(t, &stubRepo{user: user})

	_, _, err := svc.Login(context.Background(), user.Email, "correcthorse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestRequireAuthRoundTrip(t *testing.T) {
	user := testUser(t, "correcthorse")
	svc := newTestService(t, &stubRepo{user: user})
	ctx := context.Background()

	token, _, err := svc.Login(ctx, user.Email, "correcthorse")
	require.NoError(t, err)

	var gotActor string
	protected := svc.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, user.ID, identity.UserID)
		gotActor = shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, user.Email, gotActor)

	// logout revokes the token
	require.NoError(t, svc.Logout(ctx, token))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
