package auth

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code,omitempty"` // Код пригласившего, необязательный
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	AccountID    int    `json:"account_id"`
	Username     string `json:"username"`
	ReferralCode string `json:"referral_code"`
	FreeSpins    int    `json:"free_spins"`
	Warning      string `json:"warning,omitempty"` // Например, неверный реферальный код
}
