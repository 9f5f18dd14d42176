package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeForex  AccountType = "forex"
	AccountTypeStocks AccountType = "stocks"
	AccountTypeCrypto AccountType = "crypto"
)

type Account struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string      `gorm:"not null" json:"name"`
	Type           AccountType `gorm:"not null" json:"type"`
	InitialDeposit float64     `gorm:"not null" json:"initial_deposit"`
	CurrentBalance float64     `gorm:"not null" json:"current_balance"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

type BalanceTransactionType string

const (
	BalanceDeposit    BalanceTransactionType = "deposit"
	BalanceWithdrawal BalanceTransactionType = "withdrawal"
	BalanceAdjustment BalanceTransactionType = "adjustment"
)

// BalanceTransaction is an immutable audit row for a manual balance change.
type BalanceTransaction struct {
	ID            string                 `gorm:"primaryKey" json:"id"`
	AccountID     uint                   `gorm:"not null;index" json:"account_id"`
	Type          BalanceTransactionType `gorm:"not null" json:"type"`
	Amount        float64                `gorm:"not null" json:"amount"`
	BalanceBefore float64                `gorm:"not null" json:"balance_before"`
	BalanceAfter  float64                `gorm:"not null" json:"balance_after"`
	Notes         *string                `json:"notes,omitempty"`
	Date          time.Time              `gorm:"not null" json:"date"`
}

func (BalanceTransaction) TableName() string {
	return "balance_transactions"
}
