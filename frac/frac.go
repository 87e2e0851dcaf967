// Package frac defines exact rational numbers with a single undefined
// value standing in for the result of a division by zero.
package frac

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// Frac is an immutable rational number. The zero value is 0. A Frac
// with a zero denominator is the undefined value: it equals every
// other undefined value and is greater than every finite value.
type Frac struct {
	rat   *big.Rat
	undef bool
}

// undefinedText is the textual form of the undefined value.
const undefinedText = "undefined"

// zero is a constant zero for comparisons.
var zero = new(big.Rat)

// Int converts an integer to a Frac.
func Int(n int64) Frac {
	return Frac{rat: new(big.Rat).SetInt64(n)}
}

// New converts num/den to a Frac. A zero den gives the undefined value.
func New(num, den int64) Frac {
	if den == 0 {
		return Undefined()
	}
	return Frac{rat: big.NewRat(num, den)}
}

// FromRat copies a big.Rat into a Frac.
func FromRat(r *big.Rat) Frac {
	return Frac{rat: new(big.Rat).Set(r)}
}

// Undefined returns the divide by zero value.
func Undefined() Frac {
	return Frac{undef: true}
}

// r returns the finite value of f. It must not be called on the
// undefined value.
func (f Frac) r() *big.Rat {
	if f.rat == nil {
		return zero
	}
	return f.rat
}

// IsUndefined indicates f is the divide by zero value.
func (f Frac) IsUndefined() bool {
	return f.undef
}

// IsInteger indicates f has a denominator of 1.
func (f Frac) IsInteger() bool {
	return !f.undef && f.r().IsInt()
}

// IsPositive indicates f is finite and greater than zero.
func (f Frac) IsPositive() bool {
	return !f.undef && f.r().Sign() > 0
}

// IsZero indicates f is a finite zero.
func (f Frac) IsZero() bool {
	return !f.undef && f.r().Sign() == 0
}

// Num returns a copy of the reduced numerator. It is 1 for the
// undefined value.
func (f Frac) Num() *big.Int {
	if f.undef {
		return big.NewInt(1)
	}
	return new(big.Int).Set(f.r().Num())
}

// Den returns a copy of the reduced, never negative, denominator. It
// is 0 for the undefined value.
func (f Frac) Den() *big.Int {
	if f.undef {
		return new(big.Int)
	}
	return new(big.Int).Set(f.r().Denom())
}

// Rat returns a copy of f as a big.Rat, or nil for the undefined value.
func (f Frac) Rat() *big.Rat {
	if f.undef {
		return nil
	}
	return new(big.Rat).Set(f.r())
}

// Add returns f+g.
func (f Frac) Add(g Frac) Frac {
	if f.undef || g.undef {
		return Undefined()
	}
	return Frac{rat: new(big.Rat).Add(f.r(), g.r())}
}

// Sub returns f-g.
func (f Frac) Sub(g Frac) Frac {
	if f.undef || g.undef {
		return Undefined()
	}
	return Frac{rat: new(big.Rat).Sub(f.r(), g.r())}
}

// Mul returns f*g.
func (f Frac) Mul(g Frac) Frac {
	if f.undef || g.undef {
		return Undefined()
	}
	return Frac{rat: new(big.Rat).Mul(f.r(), g.r())}
}

// Div returns f/g. Dividing by zero, or involving the undefined value
// at all, gives the undefined value.
func (f Frac) Div(g Frac) Frac {
	if f.undef || g.undef || g.r().Sign() == 0 {
		return Undefined()
	}
	return Frac{rat: new(big.Rat).Quo(f.r(), g.r())}
}

// Cmp compares f and g, returning -1, 0 or +1. The undefined value
// sorts after every finite value.
func (f Frac) Cmp(g Frac) int {
	switch {
	case f.undef && g.undef:
		return 0
	case f.undef:
		return 1
	case g.undef:
		return -1
	}
	return f.r().Cmp(g.r())
}

// Equal indicates f and g are the same value.
func (f Frac) Equal(g Frac) bool {
	return f.Cmp(g) == 0
}

// String displays f as "n", "n/d" or "undefined".
func (f Frac) String() string {
	if f.undef {
		return undefinedText
	}
	return f.r().RatString()
}

// Key returns a string suitable for indexing maps by value.
func (f Frac) Key() string {
	return f.String()
}

// ErrInvalidFormat is returned when a literal is not "n" or "n/d".
var ErrInvalidFormat = errors.New("invalid fraction format")

var isLiteral = regexp.MustCompile(`^([-+]?[0-9]+)(?:/([-+]?[0-9]+))?$`).FindStringSubmatch

// Parse converts text of the form "n" or "n/d" into a Frac. The text
// "undefined" and any zero denominator give the undefined value.
func Parse(text string) (Frac, error) {
	s := strings.TrimSpace(text)
	if s == undefinedText {
		return Undefined(), nil
	}
	m := isLiteral(s)
	if m == nil {
		return Frac{}, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}
	num, ok := new(big.Int).SetString(m[1], 10)
	if !ok {
		return Frac{}, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}
	den := big.NewInt(1)
	if m[2] != "" {
		if _, ok := den.SetString(m[2], 10); !ok {
			return Frac{}, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
		}
	}
	if den.Sign() == 0 {
		return Undefined(), nil
	}
	return Frac{rat: new(big.Rat).SetFrac(num, den)}, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(text string) Frac {
	f, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

// ByValue sorts Fracs in ascending order, undefined last.
type ByValue []Frac

func (a ByValue) Len() int           { return len(a) }
func (a ByValue) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByValue) Less(i, j int) bool { return a[i].Cmp(a[j]) < 0 }
