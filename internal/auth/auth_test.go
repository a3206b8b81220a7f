package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/persistence"
	"github.com/sara-relief/relief-service/internal/repository/memory"
	apperrors "github.com/sara-relief/relief-service/pkg/util"
)

type stubDenylist struct {
	revoked map[string]bool
}

func (s *stubDenylist) Revoke(_ context.Context, session domain.Session) error {
	s.revoked[session.TokenID] = true
	return nil
}

func (s *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 30)
	user := &domain.User{ID: "u-1", Username: "vol", Role: domain.RoleVolunteer}

	token, session, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, session.TokenID)
	assert.Equal(t, 30*time.Minute, session.ExpiresAt.Sub(session.IssuedAt))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "vol", claims.Username)
	assert.Equal(t, domain.RoleVolunteer, claims.Role)
	assert.Equal(t, "u-1", claims.Session().UserID)
	assert.Equal(t, session.TokenID, claims.Session().TokenID)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	issuer := NewTokenManager("secret", 1)
	token, _, err := issuer.GenerateToken(&domain.User{ID: "u-1", Username: "vol", Role: domain.RoleVolunteer})
	require.NoError(t, err)

	_, err = NewTokenManager("other", 1).ParseToken(token)
	assert.Error(t, err)

	later := NewTokenManager("secret", 1)
	later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = later.ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)
	hashed, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hashed, "s3cret!"))
	assert.ErrorIs(t, h.Compare(hashed, "wrong"), ErrPasswordMismatch)
}

func TestRedisDenylistWithoutRedisIsNoop(t *testing.T) {
	d := NewRedisDenylist(nil)
	require.NoError(t, d.Revoke(context.Background(), domain.Session{TokenID: "t", ExpiresAt: time.Now().Add(time.Hour)}))
	revoked, err := d.IsRevoked(context.Background(), "t")
	require.NoError(t, err)
	assert.False(t, revoked)

	d = NewRedisDenylist(&persistence.Redis{})
	revoked, err = d.IsRevoked(context.Background(), "t")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func newProtectedApp(t *testing.T, users *memory.Store, denylist Denylist, allowed ...domain.Role) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("secret", 10)
	mw := NewAuthMiddleware(tm, users.Users(), denylist, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/private", mw.Handle, RequireRole(allowed...), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	return app, tm
}

func TestAuthMiddleware(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	vol := &domain.User{Username: "vol", Email: "vol@relief.test", Role: domain.RoleVolunteer, Enabled: true}
	donor := &domain.User{Username: "donor", Email: "donor@relief.test", Role: domain.RoleDonor, Enabled: true}
	require.NoError(t, store.Users().Create(ctx, vol))
	require.NoError(t, store.Users().Create(ctx, donor))

	denylist := &stubDenylist{revoked: map[string]bool{}}
	app, tm := newProtectedApp(t, store, denylist, domain.RoleVolunteer, domain.RoleAdmin)

	volToken, volSession, err := tm.GenerateToken(vol)
	require.NoError(t, err)
	donorToken, _, err := tm.GenerateToken(donor)
	require.NoError(t, err)

	call := func(header string) int {
		req := httptest.NewRequest("GET", "/private", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusUnauthorized, call(""))
	assert.Equal(t, fiber.StatusUnauthorized, call("Token abc"))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer garbage"))
	assert.Equal(t, fiber.StatusOK, call("Bearer "+volToken))
	assert.Equal(t, fiber.StatusForbidden, call("Bearer "+donorToken))

	vol.Enabled = false
	require.NoError(t, store.Users().Update(ctx, vol))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer "+volToken))

	vol.Enabled = true
	require.NoError(t, store.Users().Update(ctx, vol))
	require.NoError(t, denylist.Revoke(ctx, volSession))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer "+volToken))

	require.NoError(t, store.Users().Delete(ctx, donor.ID))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer "+donorToken))
}
