package quantity

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	inf "gopkg.in/inf.v0"
)

// ErrInvalidFormat is reported for any malformed quantity: an empty
// string, an unrecognized unit suffix, or an exponent suffix that ends
// in a letter. It is the only error kind produced by this package and
// can be tested for with [errors.Is].
var ErrInvalidFormat = errors.New("invalid quantity format")

// suffixChars are the characters at which a quantity string is split
// into its numeric literal and its unit suffix. The scan is positional:
// the first occurrence wins, whether it starts a unit token ("Ki", "m")
// or a decimal exponent ("e9", "E-6").
//
// Note that 'K' splits but has no multiplier, so "1K" parses into the
// pair ("1", "K") and then fails at multiplier lookup. Only lowercase
// 'k' denotes kilo.
const suffixChars = "eEinumkKMGTP"

// multipliers maps each recognized unit suffix to its exact factor.
// Binary suffixes are powers of 1024, decimal suffixes are powers of
// 1000, and every value is an exact decimal (10^n is a unit coefficient
// at scale -n, never a float approximation).
// The table is read-only after initialization.
var multipliers = map[string]*inf.Dec{
	"":   inf.NewDec(1, 0),
	"Ki": inf.NewDec(1<<10, 0),
	"Mi": inf.NewDec(1<<20, 0),
	"Gi": inf.NewDec(1<<30, 0),
	"Ti": inf.NewDec(1<<40, 0),
	"Pi": inf.NewDec(1<<50, 0),
	"Ei": inf.NewDec(1<<60, 0),
	"n":  inf.NewDec(1, 9),
	"u":  inf.NewDec(1, 6),
	"m":  inf.NewDec(1, 3),
	"k":  inf.NewDec(1, -3),
	"M":  inf.NewDec(1, -6),
	"G":  inf.NewDec(1, -9),
	"T":  inf.NewDec(1, -12),
	"P":  inf.NewDec(1, -15),
	"E":  inf.NewDec(1, -18),
}

// multiplier returns the exact factor for a unit suffix.
// A suffix that contains a digit is a decimal exponent token: the part
// after the leading 'e' or 'E' is parsed as a signed integer n and the
// factor is 10^n. Any other suffix must be present in the multiplier
// table.
//
// multiplier returns [ErrInvalidFormat] for anything else.
func multiplier(suffix string) (*inf.Dec, error) {
	if containsDigit(suffix) && len(suffix) > 1 {
		exp, err := strconv.Atoi(suffix[1:])
		if err != nil || exp > math.MaxInt32 || exp < math.MinInt32 {
			return nil, ErrInvalidFormat
		}
		return inf.NewDec(1, inf.Scale(-exp)), nil
	}
	m, ok := multipliers[suffix]
	if !ok {
		return nil, ErrInvalidFormat
	}
	return m, nil
}

// indexOfSuffix returns the index of the first suffix character in s,
// or len(s) if there is none.
func indexOfSuffix(s string) int {
	if i := strings.IndexAny(s, suffixChars); i >= 0 {
		return i
	}
	return len(s)
}

func containsDigit(s string) bool {
	for _, ch := range s {
		if unicode.IsDigit(ch) {
			return true
		}
	}
	return false
}

func endsWithLetter(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}
