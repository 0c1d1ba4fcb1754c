package math

import (
	"testing"
)

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Vec3(t *testing.T) {
	got := Vec2{1, 2}.Vec3(3)
	if want := (Vec3{1, 2, 3}); got != want {
		t.Errorf("Vec2.Vec3() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	got := UnitX.Cross(UnitY)
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999999 || l > 1.000001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3LerpEndpoints(t *testing.T) {
	a := Vec3{0.1, -7.3, 1e-3}
	b := Vec3{3.3, 0.7, -2.9}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got := (Vec3{}).Lerp(Vec3{10, 20, 30}, 0.5); got != (Vec3{5, 10, 15}) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
}
