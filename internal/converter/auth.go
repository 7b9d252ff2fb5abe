package converter

import (
	"reward_wheel/internal/api/dto/auth"
	"reward_wheel/internal/model"
)

func ToAuthResponse(data *model.AuthData) auth.AuthResponse {
	res := auth.AuthResponse{
		AccessToken:  data.AccessToken,
		AccountID:    data.Account.ID,
		Username:     data.Account.Username,
		ReferralCode: data.Account.ReferralCode,
		FreeSpins:    data.Account.FreeSpins,
	}
	if data.ReferralWarning != nil {
		res.Warning = data.ReferralWarning.Error()
	}
	return res
}
