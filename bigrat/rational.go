// Package bigrat implements exact rational arithmetic over arbitrary-
// precision integers. The CAG arrangement engine uses it to compute edge
// intersections without the rounding error that floating point would
// introduce into the planar graph's combinatorics: a single intersection
// test that comes out wrong in a comparison can flip a face's winding
// number or leave a half-edge pairing broken.
//
// No example in the corpus implements exact rational arithmetic, so this
// package is built directly on math/big rather than grounded in an existing
// file; its style (sentinel errors, doc density, defaulting constructors)
// follows the rest of the module.
package bigrat

import "math/big"

// Rational is an exact fraction num/den, always kept in lowest terms with
// den > 0.
type Rational struct {
	num *big.Int
	den *big.Int
}

// Zero is the additive identity.
var Zero = Rational{num: big.NewInt(0), den: big.NewInt(1)}

// One is the multiplicative identity.
var One = Rational{num: big.NewInt(1), den: big.NewInt(1)}

// NewFromInt64 builds a Rational equal to n.
func NewFromInt64(n int64) Rational {
	return Rational{num: big.NewInt(n), den: big.NewInt(1)}
}

// New builds a Rational equal to num/den, reducing to lowest terms. Panics
// if den is zero; callers in this package never construct a Rational from
// untrusted input without checking first.
func New(num, den int64) Rational {
	if den == 0 {
		panic("bigrat: zero denominator")
	}
	return normalize(big.NewInt(num), big.NewInt(den))
}

// NewFromBigInt builds a Rational equal to num/den, reducing to lowest
// terms. The inputs are copied; callers retain ownership of num and den.
func NewFromBigInt(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		panic("bigrat: zero denominator")
	}
	return normalize(new(big.Int).Set(num), new(big.Int).Set(den))
}

// normalize takes ownership of num and den, reduces by their gcd, and fixes
// the sign so den is always positive.
func normalize(num, den *big.Int) Rational {
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	if num.Sign() == 0 {
		return Rational{num: big.NewInt(0), den: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Cmp(big.NewInt(1)) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	return Rational{num: num, den: den}
}

// Num returns the reduced numerator.
func (r Rational) Num() *big.Int { return r.num }

// Den returns the reduced denominator, always positive.
func (r Rational) Den() *big.Int { return r.den }

// Sign returns -1, 0, or 1 matching the sign of r.
func (r Rational) Sign() int {
	if r.num == nil {
		return 0
	}
	return r.num.Sign()
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	num := new(big.Int).Mul(r.num, o.den)
	num.Add(num, new(big.Int).Mul(o.num, r.den))
	den := new(big.Int).Mul(r.den, o.den)
	return normalize(num, den)
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	num := new(big.Int).Mul(r.num, o.den)
	num.Sub(num, new(big.Int).Mul(o.num, r.den))
	den := new(big.Int).Mul(r.den, o.den)
	return normalize(num, den)
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	num := new(big.Int).Mul(r.num, o.num)
	den := new(big.Int).Mul(r.den, o.den)
	return normalize(num, den)
}

// Div returns r / o. Panics if o is zero.
func (r Rational) Div(o Rational) Rational {
	if o.Sign() == 0 {
		panic("bigrat: division by zero")
	}
	num := new(big.Int).Mul(r.num, o.den)
	den := new(big.Int).Mul(r.den, o.num)
	return normalize(num, den)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(r.num), den: new(big.Int).Set(r.den)}
}

// Cmp compares r and o, returning -1, 0, or 1, via cross-multiplication so
// no floating point rounding can enter the comparison.
func (r Rational) Cmp(o Rational) int {
	lhs := new(big.Int).Mul(r.num, o.den)
	rhs := new(big.Int).Mul(o.num, r.den)
	return lhs.Cmp(rhs)
}

// Equal reports whether r and o represent the same value.
func (r Rational) Equal(o Rational) bool {
	return r.Cmp(o) == 0
}

// Float64 returns the closest float64 approximation of r, for use only at
// the boundary where the arrangement hands rasterizable geometry to the
// analytic rasterizer.
func (r Rational) Float64() float64 {
	f := new(big.Rat).SetFrac(r.num, r.den)
	v, _ := f.Float64()
	return v
}

// String returns a human-readable num/den representation.
func (r Rational) String() string {
	if r.den.Cmp(big.NewInt(1)) == 0 {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}
