package env

import (
	"os"
	"reward_wheel/internal/config"
)

const (
	paymentProviderKeyEnvName = "PAYMENT_PROVIDER_KEY"
	paymentCheckoutURLEnvName = "PAYMENT_CHECKOUT_URL"
	paymentWebhookEnvName     = "PAYMENT_WEBHOOK_SECRET"
)

type paymentConfig struct {
	providerKey   string
	checkoutURL   string
	webhookSecret string
}

// NewPaymentConfig - без ключа провайдера покупки начисляются сразу (демо режим)
func NewPaymentConfig() (config.PaymentConfig, error) {
	return &paymentConfig{
		providerKey:   os.Getenv(paymentProviderKeyEnvName),
		checkoutURL:   os.Getenv(paymentCheckoutURLEnvName),
		webhookSecret: os.Getenv(paymentWebhookEnvName),
	}, nil
}

func (cfg *paymentConfig) ProviderAvailable() bool {
	return len(cfg.providerKey) > 0 && len(cfg.checkoutURL) > 0
}

func (cfg *paymentConfig) CheckoutURL() string {
	return cfg.checkoutURL
}

func (cfg *paymentConfig) WebhookSecret() string {
	return cfg.webhookSecret
}
