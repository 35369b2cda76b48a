package domain

import (
	"strings"
	"time"
)

type Address struct {
	AddressLine1 string `json:"addressLine1,omitempty" dynamodbav:"address_line1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty" dynamodbav:"address_line2,omitempty"`
	City         string `json:"city,omitempty" dynamodbav:"city,omitempty"`
	State        string `json:"state,omitempty" dynamodbav:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty" dynamodbav:"postal_code,omitempty"`
	Country      string `json:"country,omitempty" dynamodbav:"country,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type User struct {
	UserID       string    `json:"userId" dynamodbav:"user_id"`
	FullName     string    `json:"fullName" dynamodbav:"full_name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PhoneNumber  string    `json:"phoneNumber" dynamodbav:"phone_number"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	IsVerified   bool      `json:"isVerified" dynamodbav:"is_verified"`
	Address      *Address  `json:"address,omitempty" dynamodbav:"address,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty" dynamodbav:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty" dynamodbav:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// Profile is the public projection of a User.
type Profile struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (u *User) Profile() Profile {
	return Profile{UserID: u.UserID, FullName: u.FullName, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

// HasLocation reports whether a location was ever recorded.
func (u *User) HasLocation() bool {
	return u.Latitude != nil || u.Longitude != nil
}

type RegisterRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	Password        string `json:"password" validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// NormalizeEmail lowercases and trims an email so it can be used as a unique key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone drops whitespace and common separators, keeping a leading '+'.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type PasswordResetRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required_without=Email"`
	Email       string `json:"email" validate:"required_without=PhoneNumber,omitempty,email"`
}

type ConfirmCodeRequest struct {
	ChallengeID string `json:"challengeId" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
}

type CompletePasswordResetRequest struct {
	PhoneNumber     string `json:"phoneNumber" validate:"required_without=Email"`
	Email           string `json:"email" validate:"required_without=PhoneNumber,omitempty,email"`
	NewPassword     string `json:"newPassword" validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// IdentityChange moves a unique account attribute (email or phone) from Old to New.
type IdentityChange struct {
	Attr string
	Old  string
	New  string
}
