package bigrat

import "testing"

func TestNewReducesToLowestTerms(t *testing.T) {
	r := New(4, 8)
	if r.Num().Int64() != 1 || r.Den().Int64() != 2 {
		t.Fatalf("New(4, 8) = %s, want 1/2", r)
	}
}

func TestNewNormalizesNegativeDenominator(t *testing.T) {
	r := New(1, -2)
	if r.Num().Int64() != -1 || r.Den().Int64() != 2 {
		t.Fatalf("New(1, -2) = %s, want -1/2", r)
	}
}

func TestAddSubMulDiv(t *testing.T) {
	half := New(1, 2)
	third := New(1, 3)

	if got := half.Add(third); !got.Equal(New(5, 6)) {
		t.Errorf("1/2 + 1/3 = %s, want 5/6", got)
	}
	if got := half.Sub(third); !got.Equal(New(1, 6)) {
		t.Errorf("1/2 - 1/3 = %s, want 1/6", got)
	}
	if got := half.Mul(third); !got.Equal(New(1, 6)) {
		t.Errorf("1/2 * 1/3 = %s, want 1/6", got)
	}
	if got := half.Div(third); !got.Equal(New(3, 2)) {
		t.Errorf("1/2 / 1/3 = %s, want 3/2", got)
	}
}

func TestCmp(t *testing.T) {
	if New(1, 3).Cmp(New(1, 2)) >= 0 {
		t.Error("1/3 should be less than 1/2")
	}
	if New(2, 4).Cmp(New(1, 2)) != 0 {
		t.Error("2/4 should equal 1/2")
	}
	if New(2, 3).Cmp(New(1, 2)) <= 0 {
		t.Error("2/3 should be greater than 1/2")
	}
}

func TestNegAndSign(t *testing.T) {
	r := New(3, 4)
	if r.Neg().Sign() != -1 {
		t.Error("negation of a positive should be negative")
	}
	if Zero.Sign() != 0 {
		t.Error("Zero should have sign 0")
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic dividing by zero")
		}
	}()
	One.Div(Zero)
}

func TestFloat64Approximation(t *testing.T) {
	r := New(1, 4)
	if got := r.Float64(); got != 0.25 {
		t.Errorf("Float64() = %v, want 0.25", got)
	}
}

func TestVectorCross(t *testing.T) {
	v := Vector{X: New(1, 1), Y: New(0, 1)}
	o := Vector{X: New(0, 1), Y: New(1, 1)}
	if got := v.Cross(o); !got.Equal(One) {
		t.Errorf("cross((1,0),(0,1)) = %s, want 1", got)
	}
}

func TestPointSubAdd(t *testing.T) {
	a := NewPoint(New(3, 1), New(5, 1))
	b := NewPoint(New(1, 1), New(2, 1))
	v := a.Sub(b)
	if !v.X.Equal(New(2, 1)) || !v.Y.Equal(New(3, 1)) {
		t.Fatalf("a - b = %+v, want (2,3)", v)
	}
	back := b.Add(v)
	if !back.X.Equal(a.X) || !back.Y.Equal(a.Y) {
		t.Errorf("b + (a-b) = %+v, want %+v", back, a)
	}
}
