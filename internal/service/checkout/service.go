package checkout

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"reward_wheel/internal/config"
	"reward_wheel/internal/model"
	"reward_wheel/internal/service"
	"strconv"

	"github.com/google/uuid"
)

type serv struct {
	ledger   service.LedgerService
	packages []model.SpinPackage
	payment  config.PaymentConfig
}

func NewCheckoutService(ledger service.LedgerService, economy config.EconomyConfig, payment config.PaymentConfig) service.CheckoutService {
	return &serv{
		ledger:   ledger,
		packages: economy.Packages(),
		payment:  payment,
	}
}

func (s *serv) Packages() []model.SpinPackage {
	return append([]model.SpinPackage(nil), s.packages...)
}

func (s *serv) find(key string) (model.SpinPackage, error) {
	for _, p := range s.packages {
		if p.Key == key {
			return p, nil
		}
	}
	return model.SpinPackage{}, model.ErrUnknownPackage
}

// Checkout - без платежного провайдера спины начисляются сразу (демо),
// иначе возвращается ссылка на оплату, а начисление ждет Confirm
func (s *serv) Checkout(ctx context.Context, accountID int, packageKey string) (*model.CheckoutResult, error) {
	pkg, err := s.find(packageKey)
	if err != nil {
		return nil, err
	}

	if !s.payment.ProviderAvailable() {
		balances, err := s.ledger.GrantBonusSpins(ctx, accountID, pkg.Spins)
		if err != nil {
			return nil, err
		}

		log.Printf("demo checkout: account %d got %d bonus spins (%s)", accountID, pkg.Spins, pkg.Key)
		return &model.CheckoutResult{
			Package:  pkg,
			Demo:     true,
			Balances: *balances,
		}, nil
	}

	orderID := uuid.NewString()
	checkoutURL, err := buildCheckoutURL(s.payment.CheckoutURL(), orderID, pkg.Key, accountID)
	if err != nil {
		return nil, err
	}

	log.Printf("checkout %s started: account %d, package %s", orderID, accountID, pkg.Key)
	return &model.CheckoutResult{
		Package: pkg,
		URL:     checkoutURL,
		OrderID: orderID,
	}, nil
}

// Confirm - подтверждение оплаты от платежного провайдера
func (s *serv) Confirm(ctx context.Context, accountID int, packageKey string) (*model.Balances, error) {
	pkg, err := s.find(packageKey)
	if err != nil {
		return nil, err
	}

	balances, err := s.ledger.GrantBonusSpins(ctx, accountID, pkg.Spins)
	if err != nil {
		return nil, err
	}

	log.Printf("checkout confirmed: account %d got %d bonus spins (%s)", accountID, pkg.Spins, pkg.Key)
	return balances, nil
}

func buildCheckoutURL(base, orderID, packageKey string, accountID int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse checkout url: %w", err)
	}

	q := u.Query()
	q.Set("order", orderID)
	q.Set("package", packageKey)
	q.Set("account", strconv.Itoa(accountID))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
