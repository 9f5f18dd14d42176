package dto

import "trading-journal/internal/model"

type GetSymbolsParam struct {
	Type       model.SymbolType
	ActiveOnly bool
}
