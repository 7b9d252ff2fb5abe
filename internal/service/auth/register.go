package auth

import (
	"context"
	"errors"
	"log"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"reward_wheel/pkg/pass"
	"reward_wheel/pkg/token"
	"strings"
	"unicode"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 6
)

// NormalizeUsername - имена хранятся без пробелов по краям и в нижнем регистре
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func validateCredentials(username, password string) error {
	if n := len([]rune(username)); n < minUsernameLen || n > maxUsernameLen {
		return model.ErrInvalidUsername
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return model.ErrInvalidUsername
		}
	}

	if len(password) < minPasswordLen {
		return model.ErrInvalidPassword
	}

	return nil
}

func (s *serv) Register(ctx context.Context, username, password, referralCode string) (*model.AuthData, error) {
	username = NormalizeUsername(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// Неверный код не блокирует регистрацию, только предупреждение
	var (
		inviter *model.Account
		warning error
	)
	if len(strings.TrimSpace(referralCode)) > 0 {
		inviter, err = s.referral.ResolveInviter(ctx, referralCode)
		if errors.Is(err, model.ErrInvalidReferralCode) {
			warning = err
		} else if err != nil {
			return nil, err
		}
	}

	freeSpins := s.economy.FreeSpinsPerDay()
	if inviter != nil {
		freeSpins += s.economy.ReferralRewardInvitee()
	}
	today := model.DateOf(s.clock.Now())

	var account *model.Account
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code, err := token.GenerateReferralCode()
		if err != nil {
			return nil, err
		}

		account = &model.Account{
			Username:     username,
			PasswordHash: passwordHash,
			FreeSpins:    freeSpins,
			Streak:       1,
			LastSpinDate: &today,
			ReferralCode: code,
		}

		// Аккаунт и связь с пригласившим создаются одной транзакцией
		err = s.txManager.Do(ctx, func(ctx context.Context) error {
			if _, err := s.accountRepo.CreateAccount(ctx, account); err != nil {
				return err
			}
			if inviter == nil {
				return nil
			}
			return s.referral.RegisterReferral(ctx, inviter.ID, account.ID)
		})
		if errors.Is(err, repository.ErrReferralCodeTaken) {
			log.Printf("referral code collision for %q, attempt %d", username, attempt+1)
			account = nil
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if account == nil {
		return nil, errors.New("could not allocate a unique referral code")
	}

	if inviter != nil {
		account.ReferredBy = &inviter.ID
		log.Printf("account %d registered via referral of %d", account.ID, inviter.ID)
	}

	accessToken, err := token.GenerateAccessToken(
		account.ID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:     accessToken,
		Account:         account,
		ReferralWarning: warning,
	}, nil
}
