package model

import "time"

// OTPState holds a pending one-time code and its expiry. A zero value means
// no code is outstanding.
type OTPState struct {
	Code      string     `gorm:"size:6" json:"-"`
	ExpiresAt *time.Time `json:"-"`
}

// Matches reports whether the given code is the outstanding one and has not
// expired at the given instant.
func (o OTPState) Matches(code string, now time.Time) bool {
	if o.Code == "" || o.ExpiresAt == nil {
		return false
	}
	return o.Code == code && now.Before(*o.ExpiresAt)
}

// Clear removes the outstanding code. Codes are single use.
func (o *OTPState) Clear() {
	o.Code = ""
	o.ExpiresAt = nil
}

// Set stores a fresh code valid until now+ttl.
func (o *OTPState) Set(code string, now time.Time, ttl time.Duration) {
	exp := now.Add(ttl)
	o.Code = code
	o.ExpiresAt = &exp
}
