package funding

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("funding account not found")
	ErrInactive          = errors.New("funding account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds in funding account")
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

type AccountType string

const (
	TypeBank        AccountType = "bank"
	TypeMobileMoney AccountType = "mobile_money"
	TypeCash        AccountType = "cash"
)

// Table: funding_accounts
type Account struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AccountID   string          `gorm:"column:account_id;type:char(32);not null;uniqueIndex" json:"account_id"`
	Name        string          `gorm:"column:name;size:128;not null" json:"name"`
	AccountType AccountType     `gorm:"column:account_type;size:32;not null" json:"account_type"`
	Balance     decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null" json:"balance"`
	Currency    string          `gorm:"column:currency;size:3;not null" json:"currency"`
	Status      Status          `gorm:"column:status;size:16;not null;default:'Active'" json:"status"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "funding_accounts" }

// Debit takes amount out of an active account. The balance is untouched on
// error.
func (a *Account) Debit(amount decimal.Decimal) error {
	if a.Status != StatusActive {
		return ErrInactive
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}
