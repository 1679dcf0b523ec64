// Package money represents fee amounts as integer minor units so that fee
// sums (release fee + fine) are exact.
package money

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	dErrors "licensing/pkg/domain-errors"
)

// Amount is a non-fractional count of minor currency units (cents).
type Amount int64

const minorPerUnit = 100

// FromUnits converts whole currency units to an Amount.
func FromUnits(units int64) Amount {
	return Amount(units * minorPerUnit)
}

// MaxUnits bounds any amount Parse accepts, well inside int64 minor units so
// that a fee plus a fine cannot overflow.
const MaxUnits = 1_000_000_000_000

var (
	amountPattern   = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d{1,2}))?$`)
	tooManyDecimals = regexp.MustCompile(`^-?\d+\.\d{3,}$`)
)

// Parse reads a plain decimal string with at most two fractional digits
// ("35", "12.50", "-3"). Exponents, signs other than a leading minus and
// amounts beyond MaxUnits are rejected.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "amount is required")
	}
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		if tooManyDecimals.MatchString(s) {
			return 0, dErrors.New(dErrors.CodeInvalidInput, "amount has more than two decimals")
		}
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid amount")
	}
	units, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || units > MaxUnits {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "amount is out of range")
	}
	var cents int64
	if frac := m[3]; frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	v := units*minorPerUnit + cents
	if v > MaxUnits*minorPerUnit {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "amount is out of range")
	}
	if m[1] == "-" {
		v = -v
	}
	return Amount(v), nil
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) IsNegative() bool {
	return a < 0
}

// Units returns the amount as a float for display only.
func (a Amount) Units() float64 {
	return float64(a) / minorPerUnit
}

func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/minorPerUnit, v%minorPerUnit)
}

// MarshalJSON renders the amount as a JSON number in currency units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string in currency units.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &n); err != nil {
		return err
	}
	parsed, err := Parse(n.String())
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
