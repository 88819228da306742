package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestResolver(domain Domain, override string) *Resolver {
	return NewResolver(domain, testSecret, "test-issuer", override)
}

func requestWithCookies(cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	return req
}

func TestResolve_DomainCookie(t *testing.T) {
	resolver := newTestResolver(DomainTutorials, "")

	token, err := resolver.Mint("user-1", "teacher", time.Hour)
	require.NoError(t, err)

	principal, err := resolver.Resolve(requestWithCookies(
		&http.Cookie{Name: "tutorials_session", Value: token},
	))
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.ID)
	assert.Equal(t, "teacher", principal.Role)
	assert.Equal(t, DomainTutorials, principal.Domain)
}

func TestResolve_CookiePriority(t *testing.T) {
	resolver := newTestResolver(DomainTutorials, "custom_session")

	first, err := resolver.Mint("first", "teacher", time.Hour)
	require.NoError(t, err)
	second, err := resolver.Mint("second", "teacher", time.Hour)
	require.NoError(t, err)

	// The override cookie outranks the conventional names.
	principal, err := resolver.Resolve(requestWithCookies(
		&http.Cookie{Name: "tutorials_session", Value: second},
		&http.Cookie{Name: "custom_session", Value: first},
	))
	require.NoError(t, err)
	assert.Equal(t, "first", principal.ID)
}

func TestResolve_CorruptCookieDoesNotBlockValidOne(t *testing.T) {
	resolver := newTestResolver(DomainTutorials, "")

	token, err := resolver.Mint("user-1", "guardian", time.Hour)
	require.NoError(t, err)

	// A garbage value under the higher-priority name is skipped.
	principal, err := resolver.Resolve(requestWithCookies(
		&http.Cookie{Name: "tutorials_session", Value: "not-a-token"},
		&http.Cookie{Name: "session_token", Value: token},
	))
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.ID)
}

func TestResolve_NoCookies(t *testing.T) {
	resolver := newTestResolver(DomainTutorials, "")

	_, err := resolver.Resolve(requestWithCookies())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_MissingSubjectIsMalformed(t *testing.T) {
	resolver := newTestResolver(DomainTutorials, "")

	now := time.Now()
	claims := Claims{
		Role: "teacher",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{string(DomainTutorials)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = resolver.Resolve(requestWithCookies(
		&http.Cookie{Name: "tutorials_session", Value: token},
	))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_CrossDomainRejected(t *testing.T) {
	tutorials := newTestResolver(DomainTutorials, "")
	jobs := newTestResolver(DomainJobs, "")

	token, err := tutorials.Mint("user-1", "teacher", time.Hour)
	require.NoError(t, err)

	// Same secret in this test, but the audience pins the domain.
	_, err = jobs.Resolve(requestWithCookies(
		&http.Cookie{Name: "jobs_session", Value: token},
		&http.Cookie{Name: "session", Value: token},
	))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_DifferentSecretRejected(t *testing.T) {
	minter := NewResolver(DomainAdmin, "secret-a", "test-issuer", "")
	verifier := NewResolver(DomainAdmin, "secret-b", "test-issuer", "")

	token, err := minter.Mint("admin-1", "superadmin", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Resolve(requestWithCookies(
		&http.Cookie{Name: "admin_session", Value: token},
	))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestResolve_ExpiredToken(t *testing.T) {
	resolver := newTestResolver(DomainTutorials, "")

	token, err := resolver.Mint("user-1", "teacher", -time.Minute)
	require.NoError(t, err)

	_, err = resolver.Resolve(requestWithCookies(
		&http.Cookie{Name: "tutorials_session", Value: token},
	))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCookie(t *testing.T) {
	resolver := newTestResolver(DomainJobs, "")

	cookie := resolver.Cookie("token-value", time.Hour)
	assert.Equal(t, "jobs_session", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}
