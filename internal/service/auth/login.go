package auth

import (
	"context"
	"errors"
	"reward_wheel/internal/model"
	"reward_wheel/pkg/pass"
	"reward_wheel/pkg/token"
)

func (s *serv) Login(ctx context.Context, username, password string) (*model.AuthData, error) {
	// Получение аккаунта по имени
	account, err := s.accountRepo.GetAccountByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(account.PasswordHash, password) {
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := token.GenerateAccessToken(
		account.ID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken: accessToken,
		Account:     account,
	}, nil
}
