package country

import "strings"

const BankTransfer = "bank_transfer"

type Config struct {
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	Currency             string   `json:"currency"`
	MobileMoneyProviders []string `json:"mobile_money_providers"`
}

var configs = map[string]Config{
	"KE": {Code: "KE", Name: "Kenya", Currency: "KES", MobileMoneyProviders: []string{"mpesa", "airtel_money"}},
	"UG": {Code: "UG", Name: "Uganda", Currency: "UGX", MobileMoneyProviders: []string{"mtn_mobile_money", "airtel_money"}},
	"TZ": {Code: "TZ", Name: "Tanzania", Currency: "TZS", MobileMoneyProviders: []string{"mpesa", "tigo_pesa", "airtel_money"}},
	"RW": {Code: "RW", Name: "Rwanda", Currency: "RWF", MobileMoneyProviders: []string{"mtn_mobile_money", "airtel_money"}},
	"GH": {Code: "GH", Name: "Ghana", Currency: "GHS", MobileMoneyProviders: []string{"mtn_mobile_money", "vodafone_cash", "airteltigo_money"}},
	"NG": {Code: "NG", Name: "Nigeria", Currency: "NGN", MobileMoneyProviders: []string{"opay", "paga"}},
	"ZM": {Code: "ZM", Name: "Zambia", Currency: "ZMW", MobileMoneyProviders: []string{"mtn_mobile_money", "airtel_money"}},
}

// Lookup is case-insensitive on the ISO code.
func Lookup(code string) (Config, bool) {
	c, ok := configs[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// DisbursementMethods returns the country's mobile-money providers followed
// by bank_transfer. Unknown countries only get bank_transfer.
func DisbursementMethods(code string) []string {
	c, ok := Lookup(code)
	if !ok {
		return []string{BankTransfer}
	}
	out := make([]string, 0, len(c.MobileMoneyProviders)+1)
	out = append(out, c.MobileMoneyProviders...)
	return append(out, BankTransfer)
}

func IsDisbursementMethod(code, method string) bool {
	for _, m := range DisbursementMethods(code) {
		if m == method {
			return true
		}
	}
	return false
}
