package repository

import (
	"gorm.io/gorm"
)

type Repository struct {
	AccountRepo            AccountRepository
	BalanceTransactionRepo BalanceTransactionRepository
	TradeRepo              TradeRepository
	SymbolRepo             SymbolRepository
	RuleRepo               RuleRepository
	SnapshotRepo           SnapshotRepository
	UnitOfWork             UnitOfWork
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		AccountRepo:            NewAccountRepository(db),
		BalanceTransactionRepo: NewBalanceTransactionRepository(db),
		TradeRepo:              NewTradeRepository(db),
		SymbolRepo:             NewSymbolRepository(db),
		RuleRepo:               NewRuleRepository(db),
		SnapshotRepo:           NewSnapshotRepository(db),
		UnitOfWork:             NewUnitOfWork(db),
	}
}
