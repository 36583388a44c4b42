package scoring

var defaultWeights = map[Factor]int{
	FactorPaymentHistory:    35,
	FactorCreditUtilization: 30,
	FactorAccountAge:        15,
	FactorLoanCount:         10,
	FactorSavingsBalance:    10,
}

var factorNames = map[Factor]string{
	FactorPaymentHistory:    "Payment History",
	FactorCreditUtilization: "Credit Utilization",
	FactorAccountAge:        "Account Age",
	FactorLoanCount:         "Number of Loans",
	FactorSavingsBalance:    "Savings Balance",
}

var factorDescriptions = map[Factor]string{
	FactorPaymentHistory:    "Share of past instalments paid on time",
	FactorCreditUtilization: "Outstanding debt relative to approved limits",
	FactorAccountAge:        "Length of the client relationship",
	FactorLoanCount:         "Completed loans without default",
	FactorSavingsBalance:    "Savings held relative to requested amount",
}

// Defaults returns the initial parameter set for a client type. Parameter
// ids are left empty for the caller to assign.
func Defaults(ct ClientType) []Parameter {
	out := make([]Parameter, 0, len(Factors))
	for _, f := range Factors {
		out = append(out, Parameter{
			ClientType:  ct,
			Factor:      f,
			Name:        factorNames[f],
			Weight:      defaultWeights[f],
			Description: factorDescriptions[f],
			Enabled:     true,
		})
	}
	return out
}

// NameOf is the display name for a factor.
func NameOf(f Factor) string { return factorNames[f] }
