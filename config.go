package jobboard

import "time"

// Config holds engine options. Components receive it at construction; there
// is no package-level configuration state.
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetDefaultPageSize() int
}

const (
	// DefaultAccessTokenTTL keeps access tokens short lived.
	DefaultAccessTokenTTL = time.Hour
	// DefaultRefreshTokenTTL bounds how long a session can be renewed
	// without re-entering credentials.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	// DefaultPageSize is the listing page size when the caller does not set one.
	DefaultPageSize = 10
)

// StaticConfig is a plain-struct Config for wiring and tests.
type StaticConfig struct {
	SigningKey      string
	Issuer          string
	Audience        []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PageSize        int
}

func (c StaticConfig) GetSigningKey() string { return c.SigningKey }

func (c StaticConfig) GetIssuer() string { return c.Issuer }

func (c StaticConfig) GetAudience() []string { return c.Audience }

func (c StaticConfig) GetAccessTokenTTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return DefaultAccessTokenTTL
	}
	return c.AccessTokenTTL
}

func (c StaticConfig) GetRefreshTokenTTL() time.Duration {
	if c.RefreshTokenTTL <= 0 {
		return DefaultRefreshTokenTTL
	}
	return c.RefreshTokenTTL
}

func (c StaticConfig) GetDefaultPageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}
