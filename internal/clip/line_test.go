package clip

import "testing"

func TestMatthesDrakopoulosClip(t *testing.T) {
	box := NewRect(0, 0, 10, 10)

	tests := []struct {
		name     string
		p0, p1   Point
		wantOK   bool
		wantP0   Point
		wantP1   Point
	}{
		{
			name: "fully inside",
			p0:   Pt(1, 1), p1: Pt(5, 5),
			wantOK: true, wantP0: Pt(1, 1), wantP1: Pt(5, 5),
		},
		{
			name: "crosses left edge",
			p0:   Pt(-5, 5), p1: Pt(5, 5),
			wantOK: true, wantP0: Pt(0, 5), wantP1: Pt(5, 5),
		},
		{
			name: "crosses all four sides (diagonal through box)",
			p0:   Pt(-5, -5), p1: Pt(15, 15),
			wantOK: true, wantP0: Pt(0, 0), wantP1: Pt(10, 10),
		},
		{
			name:   "entirely left of box",
			p0:     Pt(-5, 5), p1: Pt(-1, 5),
			wantOK: false,
		},
		{
			name:   "entirely above box",
			p0:     Pt(5, -5), p1: Pt(5, -1),
			wantOK: false,
		},
		{
			name: "vertical line crossing top and bottom",
			p0:   Pt(5, -5), p1: Pt(5, 15),
			wantOK: true, wantP0: Pt(5, 0), wantP1: Pt(5, 10),
		},
		{
			name: "horizontal line crossing left and right",
			p0:   Pt(-5, 5), p1: Pt(15, 5),
			wantOK: true, wantP0: Pt(0, 5), wantP1: Pt(10, 5),
		},
		{
			name:   "diagonal missing box entirely",
			p0:     Pt(-5, 30), p1: Pt(30, -5),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p0, p1 := tt.p0, tt.p1
			ok := MatthesDrakopoulosClip(&p0, &p1, box)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !approxPoint(p0, tt.wantP0) || !approxPoint(p1, tt.wantP1) {
				t.Errorf("clipped = (%v, %v), want (%v, %v)", p0, p1, tt.wantP0, tt.wantP1)
			}
		})
	}
}

func TestMatthesDrakopoulosClipIdempotent(t *testing.T) {
	box := NewRect(0, 0, 10, 10)
	p0, p1 := Pt(-5, -5), Pt(15, 15)
	if !MatthesDrakopoulosClip(&p0, &p1, box) {
		t.Fatal("expected clip to succeed")
	}
	p0Again, p1Again := p0, p1
	if !MatthesDrakopoulosClip(&p0Again, &p1Again, box) {
		t.Fatal("re-clipping an already-clipped segment should still succeed")
	}
	if !approxPoint(p0, p0Again) || !approxPoint(p1, p1Again) {
		t.Errorf("clipping a fully-contained segment should be a no-op")
	}
}

func approxPoint(a, b Point) bool {
	const eps = 1e-9
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx < eps && dy < eps
}
