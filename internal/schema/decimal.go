package schema

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// DecimalPattern is the wire contract for every decimal-as-string field:
// unsigned, no exponent, optional fractional part. A trailing dot ("5.") is
// accepted.
const DecimalPattern = `^\d+(\.\d*)?$`

var decimalRe = regexp.MustCompile(DecimalPattern)

// DecimalString is a non-negative decimal encoded as a JSON string.
type DecimalString string

// ParseDecimalString checks s against DecimalPattern.
func ParseDecimalString(s string) (DecimalString, error) {
	if !decimalRe.MatchString(s) {
		return "", fmt.Errorf("wrong value %q for pattern %s", s, DecimalPattern)
	}
	return DecimalString(s), nil
}

// Decimal converts a validated value. It fails only for values that never
// went through ParseDecimalString.
func (d DecimalString) Decimal() (decimal.Decimal, error) {
	if _, err := ParseDecimalString(string(d)); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(d))
}

func (d DecimalString) String() string { return string(d) }
