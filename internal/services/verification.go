package services

import (
	"context"
	"fmt"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/phone"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/utils"
)

// PhoneVerificationService runs the phone verification workflow:
// no phone -> pending verification -> verified. Requesting a new number from
// any state moves the user back to pending with a fresh code.
type PhoneVerificationService struct {
	users      repository.UserRepository
	sms        SMSSender
	normalizer phone.Normalizer
	newCode    func() (string, error)
}

// NewPhoneVerificationService constructs a PhoneVerificationService.
func NewPhoneVerificationService(users repository.UserRepository, sms SMSSender, normalizer phone.Normalizer) *PhoneVerificationService {
	return &PhoneVerificationService{
		users:      users,
		sms:        sms,
		normalizer: normalizer,
		newCode:    utils.VerificationCode,
	}
}

// RequestVerification stores rawPhone as the user's pending number with a new
// code and texts the code to it. SMS delivery is not awaited.
func (s *PhoneVerificationService) RequestVerification(ctx context.Context, user *models.User, rawPhone string) error {
	number, err := s.normalizer.Normalize(rawPhone)
	if err != nil {
		return ErrInvalidPhoneNumber
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}

	user.Phone = &number
	user.PhoneVerified = false
	user.PhoneVerificationCode = &code
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save pending phone: %w", err)
	}

	dispatchSMS(s.sms, number, verificationText(code))
	return nil
}

// ConfirmVerification marks the pending number verified when both the number
// and the code match what RequestVerification stored. Nothing is written on
// failure.
func (s *PhoneVerificationService) ConfirmVerification(ctx context.Context, user *models.User, rawPhone, code string) error {
	number, err := s.normalizer.Normalize(rawPhone)
	if err != nil {
		return ErrInvalidPhoneNumber
	}

	if user.Phone == nil || *user.Phone != number {
		return ErrPhoneMismatch
	}
	if user.PhoneVerificationCode == nil || *user.PhoneVerificationCode != code {
		return ErrInvalidVerificationCode
	}

	user.PhoneVerified = true
	user.PhoneVerificationCode = nil
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save verified phone: %w", err)
	}
	return nil
}

func verificationText(code string) string {
	return fmt.Sprintf("Your Startup Village verification code is %s", code)
}
