package models

import (
	"math"
	"math/bits"
)

// Default paging used when a listing request omits page or size.
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 20

	// MaxPageNumber is the largest page number a listing accepts.
	MaxPageNumber = math.MaxInt32
)

// Page selects a slice of an ordered listing. Number is zero based.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

// Offset returns the number of rows to skip. The result saturates at
// math.MaxInt64, the largest offset SQL databases accept.
func (p Page) Offset() uint64 {
	if p.Number <= 0 || p.Size <= 0 {
		return 0
	}

	hi, lo := bits.Mul64(uint64(p.Number), uint64(p.Size))
	if hi != 0 || lo > math.MaxInt64 {
		return math.MaxInt64
	}
	return lo
}
