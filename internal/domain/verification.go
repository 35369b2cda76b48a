package domain

import "time"

// Purpose names the sensitive write a challenge gates.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposePasswordReset Purpose = "password_reset"
)

// VerificationState only moves forward:
// issued -> verified -> consumed, or issued/verified -> expired.
type VerificationState int

const (
	StateIssued VerificationState = iota
	StateVerified
	StateConsumed
	StateExpired
)

func (s VerificationState) String() string {
	switch s {
	case StateIssued:
		return "issued"
	case StateVerified:
		return "verified"
	case StateConsumed:
		return "consumed"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Candidate is everything needed to create an account once the
// registration code is confirmed. The password is already hashed.
type Candidate struct {
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
}

// PendingVerification is one in-flight OTP challenge. It lives in memory
// only; the raw code is never kept, just its fingerprint.
type PendingVerification struct {
	Ref       string
	Purpose   Purpose
	Subject   string
	Candidate *Candidate
	CodeHash  []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	State     VerificationState
	Attempts  int
}

// Active reports whether the challenge can still be acted on at now.
func (v *PendingVerification) Active(now time.Time) bool {
	return (v.State == StateIssued || v.State == StateVerified) && now.Before(v.ExpiresAt)
}

// Challenge is what a caller gets back when a code is issued.
type Challenge struct {
	Ref       string    `json:"challengeId"`
	ExpiresAt time.Time `json:"expiresAt"`
	// TestCode is only populated in test mode.
	TestCode string `json:"otp,omitempty"`
}
