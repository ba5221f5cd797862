package jobboard

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenService issues and verifies the engine's identity tokens.
type TokenService interface {
	IssueAccess(identity Identity) (string, error)
	IssueRefresh(identity Identity) (string, error)
	Validate(token string, kind TokenKind) (*JWTClaims, error)
}

// TokenServiceImpl implements the TokenService interface using HS256 JWTs.
type TokenServiceImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
	now        func() time.Time
}

// NewTokenService creates a new TokenService instance
func NewTokenService(opts Config) *TokenServiceImpl {
	return &TokenServiceImpl{
		signingKey: []byte(opts.GetSigningKey()),
		accessTTL:  opts.GetAccessTokenTTL(),
		refreshTTL: opts.GetRefreshTokenTTL(),
		issuer:     opts.GetIssuer(),
		audience:   opts.GetAudience(),
		logger:     defLogger{},
		now:        time.Now,
	}
}

func (ts *TokenServiceImpl) WithLogger(logger Logger) *TokenServiceImpl {
	if logger != nil {
		ts.logger = logger
	}
	return ts
}

// WithClock injects a custom clock (useful for tests).
func (ts *TokenServiceImpl) WithClock(clock func() time.Time) *TokenServiceImpl {
	if clock != nil {
		ts.now = clock
	}
	return ts
}

// IssueAccess mints a short-lived token that authorizes resource operations.
func (ts *TokenServiceImpl) IssueAccess(identity Identity) (string, error) {
	return ts.issue(identity, TokenKindAccess, ts.accessTTL)
}

// IssueRefresh mints a long-lived token whose only use is Refresh.
func (ts *TokenServiceImpl) IssueRefresh(identity Identity) (string, error) {
	return ts.issue(identity, TokenKindRefresh, ts.refreshTTL)
}

func (ts *TokenServiceImpl) issue(identity Identity, kind TokenKind, ttl time.Duration) (string, error) {
	if identity == nil {
		return "", errors.New("identity is required", errors.CategoryBadInput)
	}

	now := ts.now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.ID(),
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:      identity.ID(),
		UserRole: identity.Role(),
		Kind:     kind,
	}

	ensureTokenID(&claims.RegisteredClaims)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and verifies a token string, returning structured claims.
// The token must have been issued as the given kind.
func (ts *TokenServiceImpl) Validate(tokenString string, kind TokenKind) (*JWTClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, ErrTokenMalformed
	}

	if !claims.IsKind(kind) {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
