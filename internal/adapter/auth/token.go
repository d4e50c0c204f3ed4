package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: TokenIssuer implements domain.TokenIssuer.
var _ domain.TokenIssuer = (*TokenIssuer)(nil)

const issuer = "krishisetu"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims are the JWT claims of a session token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer issues HS256-signed session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with secret; tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token whose subject is the account id.
func (i *TokenIssuer) Issue(account domain.Account) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	roles := make([]string, len(account.Roles))
	for n, r := range account.Roles {
		roles[n] = string(r)
	}

	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   account.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns the caller it was issued for.
func (i *TokenIssuer) Parse(tokenString string) (domain.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Caller{}, ErrTokenExpired
		}
		return domain.Caller{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return domain.Caller{}, ErrTokenInvalid
	}

	roles := make([]domain.Role, len(claims.Roles))
	for n, r := range claims.Roles {
		roles[n] = domain.Role(r)
	}
	return domain.Caller{AccountID: claims.Subject, Roles: roles}, nil
}
