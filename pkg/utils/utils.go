package utils

import (
	"log"
	"math"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

// Round rounds half away from zero to the given number of decimals. Values too
// large to scale are returned unchanged.
func Round(value float64, places int) float64 {
	p := math.Pow10(places)
	if math.IsInf(value*p, 0) {
		return value
	}
	return math.Round(value*p) / p
}

// RoundPtr is Round for optional values.
func RoundPtr(value *float64, places int) *float64 {
	if value == nil {
		return nil
	}
	return ToPointer(Round(*value, places))
}
