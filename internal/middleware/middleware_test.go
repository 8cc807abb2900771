package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/geobites/internal/config"
	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/utils"
)

const testSecret = "test-secret"

func sessionCookie(t *testing.T, id model.Identity) *http.Cookie {
	t.Helper()
	tok, err := utils.NewSessionToken(testSecret, id, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: tok.Token}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Use(Session(testSecret))
	ok := func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"ok": true}) }
	e.GET("/any", ok)
	e.GET("/user", ok, RequireAuth)
	e.GET("/owner", ok, RequireRole(model.RoleOwner))
	e.GET("/who", func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return c.String(http.StatusOK, "anon")
		}
		return c.String(http.StatusOK, string(id.Role())+":"+id.Email())
	})
	return e
}

func do(e *echo.Echo, path string, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession_ResolvesIdentity(t *testing.T) {
	e := newEcho()

	assert.Equal(t, "anon", do(e, "/who", nil).Body.String())
	assert.Equal(t, "user:a@x.com",
		do(e, "/who", sessionCookie(t, model.Customer{UserEmail: "a@x.com", UserName: "A"})).Body.String())
	assert.Equal(t, "anon", do(e, "/who", &http.Cookie{Name: SessionCookieName, Value: "garbage"}).Body.String())
}

func TestRequireAuthAndRole(t *testing.T) {
	e := newEcho()
	customer := sessionCookie(t, model.Customer{UserEmail: "a@x.com", UserName: "A"})
	owner := sessionCookie(t, model.Owner{OwnerEmail: "owner@geobites.com"})

	cases := []struct {
		path   string
		ck     *http.Cookie
		status int
	}{
		{"/any", nil, http.StatusOK},
		{"/user", nil, http.StatusUnauthorized},
		{"/user", customer, http.StatusOK},
		{"/user", owner, http.StatusOK},
		{"/owner", nil, http.StatusUnauthorized},
		{"/owner", customer, http.StatusUnauthorized},
		{"/owner", owner, http.StatusOK},
	}
	for _, tc := range cases {
		rec := do(e, tc.path, tc.ck)
		assert.Equal(t, tc.status, rec.Code, tc.path)
		if tc.status == http.StatusUnauthorized {
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
		}
	}
}

func TestSessionCookieAttributes(t *testing.T) {
	e := echo.New()
	tok := utils.SessionToken{Token: "abc", Exp: time.Now().Add(7 * 24 * time.Hour)}

	for _, prod := range []bool{false, true} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		SetSessionCookie(c, tok, CookieOptions{Production: prod, TTL: 7 * 24 * time.Hour})

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		ck := cookies[0]
		assert.Equal(t, "token", ck.Name)
		assert.Equal(t, "abc", ck.Value)
		assert.True(t, ck.HttpOnly)
		assert.Equal(t, 7*24*3600, ck.MaxAge)
		assert.Equal(t, prod, ck.Secure)
		if prod {
			assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
		} else {
			assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
		}
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	ClearSessionCookie(c, CookieOptions{Production: true})
	ck := rec.Result().Cookies()[0]
	assert.Equal(t, "", ck.Value)
	assert.True(t, ck.MaxAge < 0)
	assert.True(t, ck.Secure)
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError, "boom") })

	do(e, "/ok?x=1", nil)
	rec := do(e, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[0], `"query":"x=1"`)
	assert.Contains(t, lines[1], `"level":"ERROR"`)
	assert.Contains(t, lines[1], `"status":500`)
}

func TestRateKeyAndBucketResult(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "1.2.3.4")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/auth/login")

	cfg := config.RateLimitConfig{Prefix: "geobites:rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "geobites:rl:ip:1.2.3.4:route:POST /api/auth/login", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "geobites:rl:user:anon", buildRateKey(cfg, c))
	c.Set(identityKey, model.Identity(model.Customer{UserEmail: "a@x.com"}))
	assert.Equal(t, "geobites:rl:user:user/a@x.com", buildRateKey(cfg, c))

	allowed, remaining, retry, ok := parseBucketResult([]interface{}{int64(0), int64(0), int64(2500)})
	require.True(t, ok)
	assert.False(t, allowed)
	assert.Equal(t, int64(0), remaining)
	assert.Equal(t, int64(2500), retry)

	_, _, _, ok = parseBucketResult("nope")
	assert.False(t, ok)
}

func TestNilRedisPassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/menu", func(c echo.Context) error { return c.String(http.StatusOK, "menu") },
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil),
		NewRedisCache(config.CacheConfig{Enabled: true}, nil))

	rec := do(e, "/menu", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "menu", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(200, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, 200, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
}

func TestCacheKeyIgnoresMethodByDefault(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "geobites:cache"}
	key := func(method, target string) string {
		c := e.NewContext(httptest.NewRequest(method, target, nil), httptest.NewRecorder())
		c.SetPath("/api/menu")
		return cacheKeyFrom(cfg, c)
	}
	assert.Equal(t, key(http.MethodGet, "/api/menu"), key(http.MethodHead, "/api/menu"))
	assert.NotEqual(t, key(http.MethodGet, "/api/menu"), key(http.MethodGet, "/api/menu?v=2"))
	assert.True(t, strings.HasPrefix(key(http.MethodGet, "/api/menu"), "geobites:cache:"))
}
