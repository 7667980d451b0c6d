package services

import "errors"

var (
	// ErrInvalidPhoneNumber is returned when a phone does not parse to a valid number.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	// ErrPhoneMismatch is returned when a confirmation names a number other
	// than the one awaiting verification.
	ErrPhoneMismatch           = errors.New("phone number does not match the number awaiting verification")
	ErrInvalidVerificationCode = errors.New("verification code is incorrect")
	ErrAlreadyCreatedUser      = errors.New("a user with this email already exists")
	ErrWeakPassword            = errors.New("password is too short")
	ErrRestrictedToSelf        = errors.New("users may only modify their own profile")
	ErrNoPendingStartupInvite  = errors.New("user has no pending cofounder invitation")
	ErrNoStartup               = errors.New("user does not belong to a startup")
	ErrAlreadyInStartup        = errors.New("user already belongs to a startup")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidRating           = errors.New("invalid rating")
)
