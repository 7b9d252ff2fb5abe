package model

import "errors"

var (
	ErrInsufficientCredits = errors.New("no spins available")
	ErrDailyLimitReached   = errors.New("daily rewarded spin limit reached")
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrDuplicateUsername   = errors.New("username already taken")

	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidUsername    = errors.New("username must be 3-20 letters or digits")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownPackage     = errors.New("unknown spin package")
	ErrInvalidAmount      = errors.New("amount must not be negative")
	ErrConcurrentUpdate   = errors.New("account changed concurrently, try again")
)
