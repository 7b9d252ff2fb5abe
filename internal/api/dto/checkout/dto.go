package checkout

import "reward_wheel/internal/api/dto/spin"

type CheckoutRequest struct {
	Package string `json:"package"` // Ключ пакета из config.yaml
}

type ConfirmRequest struct {
	AccountID int    `json:"account_id"`
	Package   string `json:"package"`
	OrderID   string `json:"order_id,omitempty"`
}

type Package struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Spins int    `json:"spins"`
	Price int    `json:"price"` // В центах
}

type CheckoutResponse struct {
	Package  Package        `json:"package"`
	Demo     bool           `json:"demo"`
	URL      string         `json:"url,omitempty"`
	OrderID  string         `json:"order_id,omitempty"`
	Balances *spin.Balances `json:"balances,omitempty"` // Только в демо-режиме
}

type ConfirmResponse struct {
	Balances spin.Balances `json:"balances"`
}
