package client

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("client not found")
	ErrBlacklisted = errors.New("client is blacklisted")
)

type Type string

const (
	TypeIndividual Type = "individual"
	TypeGroup      Type = "group"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusBlacklisted Status = "blacklisted"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// Table: clients
type Client struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ClientID   string `gorm:"column:client_id;type:char(32);not null;uniqueIndex" json:"client_id"`
	Name       string `gorm:"column:name;size:128;not null" json:"name"`
	Phone      string `gorm:"column:phone;size:32" json:"phone"`
	Email      string `gorm:"column:email;size:128" json:"email"`
	ClientType Type   `gorm:"column:client_type;size:16;not null" json:"client_type"`
	Status     Status `gorm:"column:status;size:16;not null;default:'active'" json:"status"`

	CreditScore int `gorm:"column:credit_score;not null;default:300" json:"credit_score"`
	// factor scores, each normalized to [0,100]
	PaymentHistoryScore    int        `gorm:"column:payment_history_score" json:"payment_history_score"`
	CreditUtilizationScore int        `gorm:"column:credit_utilization_score" json:"credit_utilization_score"`
	AccountAgeScore        int        `gorm:"column:account_age_score" json:"account_age_score"`
	LoanCountScore         int        `gorm:"column:loan_count_score" json:"loan_count_score"`
	SavingsBalanceScore    int        `gorm:"column:savings_balance_score" json:"savings_balance_score"`
	ScoredAt               *time.Time `gorm:"column:scored_at" json:"scored_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// ContactAccount is the registered value used as a disbursement destination
// when none is entered.
func (c *Client) ContactAccount() string { return c.Phone }
