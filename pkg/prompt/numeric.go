package prompt

import (
	"math/big"
	"strings"

	"github.com/ogulcanaydogan/budget-intake/pkg/model"
	"github.com/shopspring/decimal"
)

// ValidNumber reports whether s parses as a number of the given kind.
// Surrounding whitespace is ignored; the token itself is never rewritten.
func ValidNumber(kind model.NumberKind, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	switch kind {
	case model.KindInteger:
		_, ok := new(big.Int).SetString(s, 10)
		return ok
	case model.KindReal:
		_, err := decimal.NewFromString(s)
		return err == nil
	}
	return false
}
