package quantity

import (
	"fmt"
	"hash/fnv"
	"math/big"
	"strings"

	inf "gopkg.in/inf.v0"
)

// Quantity is a fixed-point representation of a resource amount, such
// as "500m" of a core or "2Gi" of memory.
// It keeps the numeric literal and the unit suffix it was constructed
// with, so values round-trip through configuration documents unchanged,
// while all arithmetic and comparison happen on the exact numeric
// value.
// Its zero value corresponds to the empty pair ("", ""), which has no
// numeric amount.
// Quantity values are immutable by convention and safe for concurrent
// read-only use by multiple goroutines; every operation returns a new
// Quantity.
type Quantity struct {
	amount string     // numeric literal, e.g. "500", "1.5", "-3.2"
	suffix string     // unit suffix, e.g. "m", "Gi", "e9", or empty
	extra  []Property // unrecognized document fields, kept verbatim
}

// divScale is the fallback precision for divisions that do not
// terminate. All multipliers are powers of 2 or 10, so their quotients
// terminate and the fallback is never hit for table suffixes.
const divScale = 34

// New returns a quantity with the given numeric literal and unit
// suffix. The pair is not validated; malformed pairs surface as
// [ErrInvalidFormat] once a numeric amount is needed.
// See also constructor [Parse].
func New(amount, suffix string) Quantity {
	return Quantity{amount: amount, suffix: suffix}
}

// Parse converts a quantity string to a quantity.
// The input must be a decimal literal followed by an optional unit
// suffix, with no separator:
//
//	500m
//	2Gi
//	1.5k
//	4e9
//	1000
//
// The string is split at the first suffix character; the split is
// positional, so an exponent marker and a unit prefix are found the
// same way. A suffix that contains a digit but ends in a letter, such
// as "e9x", is rejected. The numeric literal itself is not validated
// here; it is checked when the numeric amount is computed.
//
// Parse returns [ErrInvalidFormat] if the string is empty or the
// suffix is malformed.
func Parse(s string) (Quantity, error) {
	if s == "" {
		return Quantity{}, fmt.Errorf("parsing quantity: %w", ErrInvalidFormat)
	}
	i := indexOfSuffix(s)
	amount, suffix := s[:i], s[i:]
	// For strings like "4e9" or "129e-6" the suffix is "e9" or "e-6".
	// A digit-bearing suffix must not end in a letter.
	if containsDigit(suffix) && endsWithLetter(suffix) {
		return Quantity{}, fmt.Errorf("parsing quantity %q: %w", s, ErrInvalidFormat)
	}
	return New(amount, suffix), nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding
// quantities.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return q
}

// Amount returns the numeric literal of the quantity.
func (q Quantity) Amount() string {
	return q.amount
}

// Suffix returns the unit suffix of the quantity.
func (q Quantity) Suffix() string {
	return q.suffix
}

// SetAmount replaces the numeric literal.
// It exists for document-binding frameworks; treat quantities used in
// arithmetic as immutable.
func (q *Quantity) SetAmount(amount string) {
	q.amount = amount
}

// SetSuffix replaces the unit suffix.
// It exists for document-binding frameworks; treat quantities used in
// arithmetic as immutable.
func (q *Quantity) SetSuffix(suffix string) {
	q.suffix = suffix
}

// String implements the [fmt.Stringer] interface and returns the
// canonical string form, the numeric literal immediately followed by
// the unit suffix.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (q Quantity) String() string {
	return q.amount + q.suffix
}

// BaseAmount returns the exact numeric value of the quantity with the
// unit multiplier applied.
// If this is a memory quantity, the result represents bytes; if it is
// a cpu quantity, the result represents cores. The engine itself is
// unit-agnostic.
//
// BaseAmount returns [ErrInvalidFormat] if the literal and suffix are
// both empty, the literal is not a decimal number, or the suffix has
// no multiplier.
func (q Quantity) BaseAmount() (*inf.Dec, error) {
	s := q.amount + q.suffix
	if s == "" {
		return nil, fmt.Errorf("resolving amount: %w", ErrInvalidFormat)
	}
	// A literal like ".5" is valid; zero-prefix it for decimal parsing.
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	p, err := Parse(s)
	if err != nil {
		return nil, fmt.Errorf("resolving amount: %w", err)
	}
	d := new(inf.Dec)
	if _, ok := d.SetString(p.amount); !ok {
		return nil, fmt.Errorf("resolving amount %q: %w", s, ErrInvalidFormat)
	}
	m, err := multiplier(p.suffix)
	if err != nil {
		return nil, fmt.Errorf("resolving amount %q: %w", s, err)
	}
	return new(inf.Dec).Mul(d, m), nil
}

// FromBaseAmount converts an exact base amount to a quantity expressed
// in the given unit suffix.
// The value is divided by the suffix's multiplier, trailing zeros are
// stripped, and the result is formatted as a plain decimal literal.
// With an empty suffix, the value itself becomes the literal.
//
// FromBaseAmount returns [ErrInvalidFormat] if the suffix has no
// multiplier.
func FromBaseAmount(value *inf.Dec, suffix string) (Quantity, error) {
	if suffix == "" {
		return Parse(trimZeros(value).String())
	}
	m, err := multiplier(suffix)
	if err != nil {
		return Quantity{}, fmt.Errorf("converting amount to %q: %w", suffix, err)
	}
	scaled := new(inf.Dec).QuoExact(value, m)
	if scaled == nil {
		scaled = new(inf.Dec).QuoRound(value, m, divScale, inf.RoundHalfUp)
	}
	return New(trimZeros(scaled).String(), suffix), nil
}

// Add returns the exact sum of quantities q and y, expressed in the
// unit suffix of q. If q is zero, or the sum is exactly zero, the
// suffix of y is used instead; zero has no inherent scale, so the
// second operand wins.
//
// Add returns [ErrInvalidFormat] if either quantity is malformed.
func (q Quantity) Add(y Quantity) (Quantity, error) {
	r, err := q.arith(y, (*inf.Dec).Add)
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v + %v]: %w", q, y, err)
	}
	return r, nil
}

// Sub returns the exact difference between quantities q and y,
// expressed in the unit suffix of q. If q is zero, or the difference
// is exactly zero, the suffix of y is used instead.
//
// Sub returns [ErrInvalidFormat] if either quantity is malformed.
func (q Quantity) Sub(y Quantity) (Quantity, error) {
	r, err := q.arith(y, (*inf.Dec).Sub)
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v - %v]: %w", q, y, err)
	}
	return r, nil
}

// arith applies op to the base amounts of q and y and re-expresses the
// result, preferring y's suffix when q or the result is zero.
func (q Quantity) arith(y Quantity, op func(z, x, y *inf.Dec) *inf.Dec) (Quantity, error) {
	d, err := q.BaseAmount()
	if err != nil {
		return Quantity{}, err
	}
	e, err := y.BaseAmount()
	if err != nil {
		return Quantity{}, err
	}
	r := op(new(inf.Dec), d, e)
	suffix := q.suffix
	if d.Sign() == 0 || r.Sign() == 0 {
		suffix = y.suffix
	}
	return FromBaseAmount(r, suffix)
}

// Mul returns the exact product of quantity q and an integer scalar,
// expressed in the unit suffix of q.
//
// Mul returns [ErrInvalidFormat] if the quantity is malformed.
func (q Quantity) Mul(scalar int64) (Quantity, error) {
	d, err := q.BaseAmount()
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v * %v]: %w", q, scalar, err)
	}
	r := new(inf.Dec).Mul(d, inf.NewDec(scalar, 0))
	p, err := FromBaseAmount(r, q.suffix)
	if err != nil {
		return Quantity{}, fmt.Errorf("computing [%v * %v]: %w", q, scalar, err)
	}
	return p, nil
}

// Neg returns a quantity with the opposite sign, expressed in the unit
// suffix of q.
func (q Quantity) Neg() (Quantity, error) {
	return q.Mul(-1)
}

// Cmp compares the numeric values of quantities, independent of their
// displayed units, and returns:
//
//	-1 if q < y
//	 0 if q = y
//	+1 if q > y
//
// Cmp returns [ErrInvalidFormat] if either quantity is malformed.
func (q Quantity) Cmp(y Quantity) (int, error) {
	d, err := q.BaseAmount()
	if err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", q, y, err)
	}
	e, err := y.BaseAmount()
	if err != nil {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", q, y, err)
	}
	return d.Cmp(e), nil
}

// Equal reports whether the quantities have the same numeric value.
// "1024Ki" equals "1048576"; the displayed unit does not matter.
func (q Quantity) Equal(y Quantity) (bool, error) {
	c, err := q.Cmp(y)
	return c == 0, err
}

// Sign returns:
//
//	-1 if q < 0
//	 0 if q = 0
//	+1 if q > 0
func (q Quantity) Sign() (int, error) {
	d, err := q.BaseAmount()
	if err != nil {
		return 0, err
	}
	return d.Sign(), nil
}

// IsZero reports whether the numeric value of the quantity is zero.
func (q Quantity) IsZero() (bool, error) {
	s, err := q.Sign()
	return s == 0, err
}

// Hash returns a hash of the integral part of the base amount.
// Quantities that are equal under [Quantity.Cmp] hash identically,
// whatever units they display.
func (q Quantity) Hash() (uint64, error) {
	d, err := q.BaseAmount()
	if err != nil {
		return 0, fmt.Errorf("hashing [%v]: %w", q, err)
	}
	t := new(inf.Dec).Round(d, 0, inf.RoundDown)
	h := fnv.New64a()
	if t.UnscaledBig().Sign() < 0 {
		h.Write([]byte{'-'})
	}
	h.Write(t.UnscaledBig().Bytes())
	return h.Sum64(), nil
}

var bigTen = big.NewInt(10)

// trimZeros strips trailing zero digits from the fractional part of x,
// returning a new value. The integral part is left alone, so plain
// formatting of the result never flips to exponent notation.
func trimZeros(x *inf.Dec) *inf.Dec {
	u := new(big.Int).Set(x.UnscaledBig())
	s := x.Scale()
	if u.Sign() == 0 {
		return inf.NewDec(0, 0)
	}
	q, r := new(big.Int), new(big.Int)
	for s > 0 {
		q.QuoRem(u, bigTen, r)
		if r.Sign() != 0 {
			break
		}
		u.Set(q)
		s--
	}
	return inf.NewDecBig(u, s)
}
