package dto

import "trading-journal/internal/model"

type CreateAccountRequest struct {
	Name           string            `json:"name" validate:"required,max=255"`
	Type           model.AccountType `json:"type" validate:"required,oneof=forex stocks crypto"`
	InitialDeposit float64           `json:"initial_deposit" validate:"required,gt=0"`
}

type BalanceTransactionRequest struct {
	Type   model.BalanceTransactionType `json:"type" validate:"required,oneof=deposit withdrawal adjustment"`
	Amount float64                      `json:"amount" validate:"required,gt=0"`
	Notes  *string                      `json:"notes" validate:"omitempty,max=1000"`
}

type BalanceTransactionResult struct {
	Account     *model.Account            `json:"account"`
	Transaction *model.BalanceTransaction `json:"transaction"`
}
