package scoring

import (
	"time"
)

type Factor string

const (
	FactorPaymentHistory    Factor = "payment_history"
	FactorCreditUtilization Factor = "credit_utilization"
	FactorAccountAge        Factor = "account_age"
	FactorLoanCount         Factor = "loan_count"
	FactorSavingsBalance    Factor = "savings_balance"
)

var Factors = []Factor{
	FactorPaymentHistory,
	FactorCreditUtilization,
	FactorAccountAge,
	FactorLoanCount,
	FactorSavingsBalance,
}

func (f Factor) Valid() bool {
	for _, k := range Factors {
		if k == f {
			return true
		}
	}
	return false
}

// ClientType selects an independently configured parameter set.
type ClientType string

const (
	ClientIndividual ClientType = "individual"
	ClientBusiness   ClientType = "business"
)

func (c ClientType) Valid() bool { return c == ClientIndividual || c == ClientBusiness }

// Table: scoring_parameters
type Parameter struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ParameterID string     `gorm:"column:parameter_id;type:char(32);not null;uniqueIndex" json:"parameter_id"`
	ClientType  ClientType `gorm:"column:client_type;size:16;not null;uniqueIndex:ux_scoring_type_factor" json:"client_type"`
	Factor      Factor     `gorm:"column:factor;size:32;not null;uniqueIndex:ux_scoring_type_factor" json:"factor"`
	Name        string     `gorm:"column:name;size:64;not null" json:"name"`
	Weight      int        `gorm:"column:weight;not null" json:"weight"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Enabled     bool       `gorm:"column:enabled;not null" json:"enabled"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Parameter) TableName() string { return "scoring_parameters" }

// FactorScores are one client's inputs, each normalized to [0,100].
type FactorScores map[Factor]int

type RiskCategory string

const (
	RiskExcellent RiskCategory = "excellent"
	RiskGood      RiskCategory = "good"
	RiskFair      RiskCategory = "fair"
	RiskPoor      RiskCategory = "poor"
)
