package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/id"
	"github.com/go-catalog-nosql/internal/pkg/token"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

const (
	codeDigits = 6

	// bcrypt rejects anything longer; the validator's max tag counts runes.
	maxPasswordBytes = 72
)

type Service interface {
	RequestRegistration(ctx context.Context, req domain.RegisterRequest) (domain.Challenge, error)
	ConfirmRegistration(ctx context.Context, ref, code string) (domain.Profile, error)
	RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) (domain.Challenge, error)
	ConfirmPasswordResetOtp(ctx context.Context, ref, code string) error
	CompletePasswordReset(ctx context.Context, req domain.CompletePasswordResetRequest) error
	Login(ctx context.Context, req domain.LoginRequest) (domain.Profile, error)
}

type challengeStore interface {
	Issue(purpose domain.Purpose, subject string, candidate *domain.Candidate, code string) domain.Challenge
	Consume(purpose domain.Purpose, ref, code string) (domain.PendingVerification, error)
	Verify(purpose domain.Purpose, ref, code string) (domain.PendingVerification, error)
	Granted(purpose domain.Purpose, subject string) bool
	ClaimGrant(purpose domain.Purpose, subject string) error
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type passwordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

// ServiceDeps holds all dependencies for the auth service.
type ServiceDeps struct {
	Challenges challengeStore
	UserRepo   accountStore
	Hasher     passwordHasher
	SMSSender  smsSender
	Mailer     mailer
	// TestMode issues TestCode for every challenge and returns it to the caller.
	TestMode bool
	TestCode string
}

type service struct {
	challenges challengeStore
	userRepo   accountStore
	hasher     passwordHasher
	sms        smsSender
	mailer     mailer
	testMode   bool
	testCode   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		challenges: deps.Challenges,
		userRepo:   deps.UserRepo,
		hasher:     deps.Hasher,
		sms:        deps.SMSSender,
		mailer:     deps.Mailer,
		testMode:   deps.TestMode,
		testCode:   deps.TestCode,
	}
}

func registrationSubject(email, phone string) string {
	return domain.NormalizeEmail(email) + "|" + domain.NormalizePhone(phone)
}

func (s *service) newCode() (string, error) {
	if s.testMode {
		return s.testCode, nil
	}
	return token.NumericCode(codeDigits)
}

func (s *service) RequestRegistration(ctx context.Context, req domain.RegisterRequest) (domain.Challenge, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Challenge{}, err
	}
	if req.Password != req.ConfirmPassword {
		return domain.Challenge{}, fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	if len(req.Password) > maxPasswordBytes {
		return domain.Challenge{}, fmt.Errorf("password too long: %w", domain.ErrBadRequest)
	}
	email := domain.NormalizeEmail(req.Email)
	phone := domain.NormalizePhone(req.PhoneNumber)
	if phone == "" {
		return domain.Challenge{}, fmt.Errorf("phone number is invalid: %w", domain.ErrBadRequest)
	}

	if err := s.ensureUnclaimed(ctx, email, phone); err != nil {
		return domain.Challenge{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.Challenge{}, err
	}
	code, err := s.newCode()
	if err != nil {
		return domain.Challenge{}, err
	}
	cand := &domain.Candidate{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
	}
	// Issue only after delivery so a failed send leaves any earlier challenge usable.
	if err := s.sms.SendSMS(ctx, phone, verificationMessage(code)); err != nil {
		return domain.Challenge{}, fmt.Errorf("deliver registration code: %w", err)
	}
	ch := s.challenges.Issue(domain.PurposeRegistration, registrationSubject(email, phone), cand, code)
	slog.Info("registration code issued", "challenge_id", ch.Ref)
	if s.testMode {
		ch.TestCode = code
	}
	return ch, nil
}

// ensureUnclaimed fails with ErrConflict when an account already holds email or phone.
func (s *service) ensureUnclaimed(ctx context.Context, email, phone string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.userRepo.GetByPhone(ctx, phone); err == nil {
		return fmt.Errorf("phone number already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) ConfirmRegistration(ctx context.Context, ref, code string) (domain.Profile, error) {
	if ref == "" || code == "" {
		return domain.Profile{}, fmt.Errorf("challengeId and otp are required: %w", domain.ErrBadRequest)
	}
	pv, err := s.challenges.Consume(domain.PurposeRegistration, ref, code)
	if err != nil {
		return domain.Profile{}, err
	}
	cand := pv.Candidate
	if cand == nil {
		return domain.Profile{}, fmt.Errorf("challenge carries no registration: %w", domain.ErrInvalidCode)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		FullName:     cand.FullName,
		Email:        cand.Email,
		PhoneNumber:  cand.PhoneNumber,
		PasswordHash: cand.PasswordHash,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The challenge stays consumed even if this fails; the caller starts over.
	if err := s.userRepo.Create(ctx, u); err != nil {
		return domain.Profile{}, err
	}
	slog.Info("account registered", "user_id", u.UserID)
	return u.Profile(), nil
}

// resetSubject returns the normalized subject key and whether it is a phone number.
func resetSubject(phone, email string) (string, bool, error) {
	if p := domain.NormalizePhone(phone); p != "" {
		return p, true, nil
	}
	if e := domain.NormalizeEmail(email); e != "" {
		return e, false, nil
	}
	return "", false, fmt.Errorf("phoneNumber or email is required: %w", domain.ErrBadRequest)
}

func (s *service) RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) (domain.Challenge, error) {
	subject, isPhone, err := resetSubject(req.PhoneNumber, req.Email)
	if err != nil {
		return domain.Challenge{}, err
	}
	var u *domain.User
	if isPhone {
		u, err = s.userRepo.GetByPhone(ctx, subject)
	} else {
		u, err = s.userRepo.GetByEmail(ctx, subject)
	}
	if err != nil {
		return domain.Challenge{}, err
	}

	code, err := s.newCode()
	if err != nil {
		return domain.Challenge{}, err
	}
	if isPhone {
		err = s.sms.SendSMS(ctx, u.PhoneNumber, verificationMessage(code))
	} else {
		err = s.mailer.SendEmail(u.Email, "Password reset code", verificationMessage(code))
	}
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("deliver reset code: %w", err)
	}
	ch := s.challenges.Issue(domain.PurposePasswordReset, subject, nil, code)
	slog.Info("password reset code issued", "challenge_id", ch.Ref, "user_id", u.UserID)
	if s.testMode {
		ch.TestCode = code
	}
	return ch, nil
}

func (s *service) ConfirmPasswordResetOtp(ctx context.Context, ref, code string) error {
	if ref == "" || code == "" {
		return fmt.Errorf("challengeId and otp are required: %w", domain.ErrBadRequest)
	}
	_, err := s.challenges.Verify(domain.PurposePasswordReset, ref, code)
	return err
}

func (s *service) CompletePasswordReset(ctx context.Context, req domain.CompletePasswordResetRequest) error {
	subject, isPhone, err := resetSubject(req.PhoneNumber, req.Email)
	if err != nil {
		return err
	}
	if !s.challenges.Granted(domain.PurposePasswordReset, subject) {
		return fmt.Errorf("password reset not verified: %w", domain.ErrUnauthorized)
	}
	if req.NewPassword == "" || req.ConfirmPassword == "" {
		return fmt.Errorf("newPassword and confirmPassword are required: %w", domain.ErrBadRequest)
	}
	if req.NewPassword != req.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	if len(req.NewPassword) > maxPasswordBytes {
		return fmt.Errorf("password too long: %w", domain.ErrBadRequest)
	}

	var u *domain.User
	if isPhone {
		u, err = s.userRepo.GetByPhone(ctx, subject)
	} else {
		u, err = s.userRepo.GetByEmail(ctx, subject)
	}
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.challenges.ClaimGrant(domain.PurposePasswordReset, subject); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, u.UserID, hash); err != nil {
		return err
	}
	slog.Info("password reset completed", "user_id", u.UserID)
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (domain.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Profile{}, err
	}
	u, err := s.userRepo.GetByPhone(ctx, domain.NormalizePhone(req.PhoneNumber))
	if err != nil {
		return domain.Profile{}, err
	}
	if !s.hasher.Verify(req.Password, u.PasswordHash) {
		return domain.Profile{}, fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
	}
	return u.Profile(), nil
}

func verificationMessage(code string) string {
	return "Your verification code is " + code + ". It expires in a few minutes."
}
