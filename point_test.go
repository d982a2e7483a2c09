package pix

import "testing"

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, 2)

	if got := p.Add(q); got != Pt(4, 6) {
		t.Errorf("Add = %+v, want (4,6)", got)
	}
	if got := p.Sub(q); got != Pt(2, 2) {
		t.Errorf("Sub = %+v, want (2,2)", got)
	}
	if got := p.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul = %+v, want (6,8)", got)
	}
	if got := p.Distance(Pt(0, 0)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := p.Lerp(q, 0.5); got != Pt(2, 3) {
		t.Errorf("Lerp = %+v, want (2,3)", got)
	}
}
