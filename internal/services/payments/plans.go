package payments

import "github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"

// Plan maps a billing price id to the entitlements it buys. The table
// mirrors the configured products of the payment provider; a price id
// arriving on a webhook that is not listed here is a configuration
// error, not a user error.
type Plan struct {
	Name           string
	PriceID        string
	PriceEUR       float64
	Role           enums.RoleType
	JobLimit       int
	VisibilityDays int
	CanTop         bool
	TopDays        int
}

var plans = []Plan{
	{
		Name:           "Regular Tier 1",
		PriceID:        "price_regular_tier1_free",
		PriceEUR:       0,
		Role:           enums.RoleTypeRegular,
		JobLimit:       1,
		VisibilityDays: 10,
	},
	{
		Name:           "Regular Tier 2",
		PriceID:        "price_regular_tier2_19eur",
		PriceEUR:       19,
		Role:           enums.RoleTypeRegular,
		JobLimit:       2,
		VisibilityDays: 30,
	},
	{
		Name:           "Regular Tier 3",
		PriceID:        "price_regular_tier3_59eur",
		PriceEUR:       59,
		Role:           enums.RoleTypeRegular,
		JobLimit:       3,
		VisibilityDays: 30,
		CanTop:         true,
		TopDays:        30,
	},
	{
		Name:           "Company Tier 1",
		PriceID:        "price_company_tier1_free",
		PriceEUR:       0,
		Role:           enums.RoleTypeCompany,
		JobLimit:       1,
		VisibilityDays: 10,
	},
	{
		Name:           "Company Tier 2",
		PriceID:        "price_company_tier2_59eur",
		PriceEUR:       59,
		Role:           enums.RoleTypeCompany,
		JobLimit:       2,
		VisibilityDays: 30,
	},
	{
		Name:           "Company Tier 3",
		PriceID:        "price_company_tier3_99eur",
		PriceEUR:       99,
		Role:           enums.RoleTypeCompany,
		JobLimit:       5,
		VisibilityDays: 30,
		CanTop:         true,
		TopDays:        7,
	},
	{
		Name:           "Company Tier 4",
		PriceID:        "price_company_tier4_179eur",
		PriceEUR:       179,
		Role:           enums.RoleTypeCompany,
		JobLimit:       10,
		VisibilityDays: 40,
		CanTop:         true,
		TopDays:        14,
	},
}

func PlanForPriceID(priceID string) (Plan, bool) {
	for _, p := range plans {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return Plan{}, false
}
