package converter

import (
	"reward_wheel/internal/api/dto/checkout"
	"reward_wheel/internal/model"
)

func ToPackage(p model.SpinPackage) checkout.Package {
	return checkout.Package{
		Key:   p.Key,
		Name:  p.Name,
		Spins: p.Spins,
		Price: p.Price,
	}
}

func ToPackages(packages []model.SpinPackage) []checkout.Package {
	result := make([]checkout.Package, len(packages))
	for i, p := range packages {
		result[i] = ToPackage(p)
	}
	return result
}

func ToCheckoutResponse(res *model.CheckoutResult) checkout.CheckoutResponse {
	out := checkout.CheckoutResponse{
		Package: ToPackage(res.Package),
		Demo:    res.Demo,
		URL:     res.URL,
		OrderID: res.OrderID,
	}
	if res.Demo {
		b := ToBalances(res.Balances)
		out.Balances = &b
	}
	return out
}
