package model

import "time"

type SymbolType string

const (
	SymbolTypeForex   SymbolType = "forex"
	SymbolTypeStocks  SymbolType = "stocks"
	SymbolTypeCrypto  SymbolType = "crypto"
	SymbolTypeFutures SymbolType = "futures"
	SymbolTypeIndices SymbolType = "indices"
)

type Symbol struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Symbol    string     `gorm:"not null;uniqueIndex" json:"symbol"`
	Name      string     `gorm:"not null" json:"name"`
	Type      SymbolType `gorm:"not null" json:"type"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Symbol) TableName() string {
	return "symbols"
}
