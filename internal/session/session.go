// Package session resolves an inbound request's identity from one of several
// candidate cookies. Each application domain (main, tutorials, jobs, admin)
// owns its own secret and cookie names; a token minted for one domain never
// verifies under another.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Domain is an isolated cookie/secret scope.
type Domain string

const (
	DomainMain      Domain = "main"
	DomainTutorials Domain = "tutorials"
	DomainJobs      Domain = "jobs"
	DomainAdmin     Domain = "admin"
)

// Principal is the authenticated identity derived from a verified token.
// Callers must still re-fetch the referenced record and re-check its
// active flag before honoring it.
type Principal struct {
	ID     string
	Role   string
	Domain Domain
}

// Claims is the token payload minted at login. Subject carries the
// principal's storage id.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ErrUnauthenticated is returned when no candidate cookie verifies.
var ErrUnauthenticated = errors.New("session: unauthenticated")

// Resolver verifies session cookies for a single domain.
type Resolver struct {
	domain      Domain
	secret      string
	issuer      string
	cookieNames []string
}

// NewResolver builds a Resolver for the domain. Candidate cookie names are
// tried in priority order: the configured override (if any), then
// "<domain>_session" and "session_token", then the generic "session"
// fallback.
func NewResolver(domain Domain, secret, issuer, cookieOverride string) *Resolver {
	names := make([]string, 0, 4)
	if cookieOverride != "" {
		names = append(names, cookieOverride)
	}
	names = append(names, string(domain)+"_session", "session_token", "session")

	return &Resolver{
		domain:      domain,
		secret:      secret,
		issuer:      issuer,
		cookieNames: names,
	}
}

// CookieName returns the name under which this domain mints its cookie,
// which is the highest-priority candidate.
func (r *Resolver) CookieName() string {
	return r.cookieNames[0]
}

// Resolve tries each candidate cookie in order and returns the principal
// from the first one that verifies. Verification failures and malformed
// tokens are swallowed so that one corrupt cookie never blocks recognition
// of a valid one under another name. A verified token without a subject
// claim is treated as malformed, not as an anonymous session.
func (r *Resolver) Resolve(req *http.Request) (*Principal, error) {
	for _, name := range r.cookieNames {
		cookie, err := req.Cookie(name)
		if err != nil || cookie.Value == "" {
			continue
		}

		claims, err := r.verify(cookie.Value)
		if err != nil {
			continue
		}
		if claims.Subject == "" {
			continue
		}

		return &Principal{
			ID:     claims.Subject,
			Role:   claims.Role,
			Domain: r.domain,
		}, nil
	}

	return nil, ErrUnauthenticated
}

// Mint signs a session token for the given principal id and role. The
// audience is pinned to the domain so the token fails verification in
// every other domain even when cookie names collide.
func (r *Resolver) Mint(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    r.issuer,
			Audience:  jwt.ClaimStrings{string(r.domain)},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(r.secret))
}

// Cookie wraps a minted token in an http.Cookie under the domain's
// highest-priority name.
func (r *Resolver) Cookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     r.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (r *Resolver) verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(r.secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(string(r.domain)),
		jwt.WithIssuer(r.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
