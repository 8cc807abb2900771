package utils // package utils provides helper functions for session tokens and hashing

import (
    "errors" // sentinel for every verification failure
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

    "github.com/iliyamo/geobites/internal/model"
)

// ErrInvalidSession is returned for any token that cannot be trusted: bad
// signature, wrong algorithm, expired, malformed or carrying an unknown
// role.  Callers never learn which check failed.
var ErrInvalidSession = errors.New("invalid session")

// SessionToken represents a signed session JWT along with its expiry.  The
// token travels in the HTTP-only "token" cookie.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// sessionClaims is the claim set carried by a session.  Name is empty for
// the owner.
type sessionClaims struct {
    Role  string `json:"role"`
    Email string `json:"email"`
    Name  string `json:"name,omitempty"`
    jwt.RegisteredClaims
}

// NewSessionToken builds and signs an HS256 JWT for the given identity that
// expires after ttl.
func NewSessionToken(secret string, id model.Identity, ttl time.Duration) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := sessionClaims{
        Role:  string(id.Role()),
        Email: id.Email(),
        Name:  id.Name(),
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   id.Email(),
            ExpiresAt: jwt.NewNumericDate(exp),
            IssuedAt:  jwt.NewNumericDate(now),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies raw against secret and returns the identity it
// carries.  Every failure collapses to ErrInvalidSession.
func ParseSessionToken(secret, raw string) (model.Identity, error) {
    if raw == "" {
        return nil, ErrInvalidSession
    }
    claims := &sessionClaims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSession
        }
        return []byte(secret), nil
    }, jwt.WithExpirationRequired())
    if err != nil || !tok.Valid || claims.Email == "" {
        return nil, ErrInvalidSession
    }
    switch model.Role(claims.Role) {
    case model.RoleOwner:
        return model.Owner{OwnerEmail: claims.Email}, nil
    case model.RoleUser:
        return model.Customer{UserEmail: claims.Email, UserName: claims.Name}, nil
    }
    return nil, ErrInvalidSession
}
