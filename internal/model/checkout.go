package model

// SpinPackage - пакет бонусных спинов на продажу
type SpinPackage struct {
	Key   string `yaml:"key"`
	Spins int    `yaml:"spins"`
	Price int    `yaml:"price"` // в центах
	Name  string `yaml:"name"`
}

type CheckoutResult struct {
	Package SpinPackage
	// Demo - платежный провайдер не настроен, спины уже начислены
	Demo     bool
	URL      string
	OrderID  string
	Balances Balances
}
