package users

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService issues and verifies access tokens
type TokenService interface {
	Issue(identity Identity) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// DefaultTokenExpiration is the token lifetime in hours: 10 days
const DefaultTokenExpiration = 240

// minSigningKeySize is the HMAC-SHA-512 block-sized key the decoded
// secret must cover
const minSigningKeySize = 64

// HMACTokenService signs and verifies HS512 tokens against a single shared
// secret. It is immutable after construction and safe for concurrent use.
type HMACTokenService struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	logger          Logger
}

var _ TokenService = (*HMACTokenService)(nil)

// NewTokenService decodes the base64 shared secret and fails fast when it is
// missing, not valid base64, or decodes to fewer than 64 bytes. A service
// that would reject every token at runtime should never start.
func NewTokenService(secret string, tokenExpiration int, issuer string, logger Logger) (*HMACTokenService, error) {
	if logger == nil {
		logger = defLogger{}
	}

	if secret == "" {
		return nil, errors.New("token secret must not be empty", errors.CategoryBadInput).
			WithTextCode(TextCodeValidation)
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "token secret is not valid base64").
			WithTextCode(TextCodeValidation)
	}

	if len(key) < minSigningKeySize {
		return nil, errors.New("token secret must decode to at least 64 bytes", errors.CategoryBadInput).
			WithTextCode(TextCodeValidation).
			WithMetadata(map[string]any{"decoded_size": len(key)})
	}

	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}

	return &HMACTokenService{
		signingKey:      key,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		logger:          logger,
	}, nil
}

// Issue creates a signed token for the identity: subject is the login
// identifier, userId carries the public identifier.
func (ts *HMACTokenService) Issue(identity Identity) (string, error) {
	if identity == nil {
		return "", errors.New("identity must not be nil", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.Email(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Hour)),
		},
		UID: identity.ID(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string. Every failure mode collapses
// into ErrInvalidToken; the underlying cause is logged, never returned, so a
// caller probing the endpoint learns nothing about why a token was rejected.
func (ts *HMACTokenService) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method", errors.CategoryAuth).
				WithMetadata(map[string]any{"alg": t.Header["alg"]})
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		ts.logger.Debug("token rejected: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		ts.logger.Error("token parsed but claims could not be decoded")
		return nil, ErrInvalidToken
	}

	if claims.UserID() == "" {
		ts.logger.Debug("token rejected: missing userId claim")
		return nil, ErrInvalidToken
	}

	return claims, nil
}
