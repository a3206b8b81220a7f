package domain

import "time"

// Session describes an issued access token.
type Session struct {
	TokenID   string
	UserID    string
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TTL returns the remaining lifetime of the session relative to now.
func (s Session) TTL(now time.Time) time.Duration {
	if s.ExpiresAt.Before(now) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
