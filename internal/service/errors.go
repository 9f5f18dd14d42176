package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrTradeAlreadyClosed  = errors.New("trade already closed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRuleNotEditable     = errors.New("system rules cannot be modified")
	ErrInvalidRange        = errors.New("invalid time range")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInput        = errors.New("invalid input")
)

// notFound translates a missing row into ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
