package token

import (
	"errors"
	"fmt"
	"reward_wheel/internal/model"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken - JWT с ID аккаунта в subject
func GenerateAccessToken(accountID int, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := model.AccountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*model.AccountClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// AccountID - ID аккаунта из subject
func AccountID(claims *model.AccountClaims) (int, error) {
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid token subject")
	}
	return id, nil
}
