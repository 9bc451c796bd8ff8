package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec3Cross(t *testing.T) {
	// Forward × up is the strafe direction used by the movement controller.
	got := Forward().Cross(Up())
	want := V3(1, 0, 0)
	if !got.ApproxEqual(want, eps) {
		t.Errorf("Forward×Up = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if math.Abs(v.Len()-1) > eps {
		t.Errorf("normalized length = %v, want 1", v.Len())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("zero.Normalize() = %v, want zero", zero)
	}
}

func TestVec3Horizontal(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"level", V3(0, 0, -1), V3(0, 0, -1)},
		{"pitched down", V3(0, -1, -1), V3(0, 0, -1)},
		{"diagonal", V3(1, 5, 1), V3(math.Sqrt2/2, 0, math.Sqrt2/2)},
		{"straight up", V3(0, 1, 0), V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Horizontal()
			if !got.ApproxEqual(tc.want, eps) {
				t.Errorf("Horizontal(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVec2Normalize(t *testing.T) {
	v := V2(1, 1).Normalize()
	if math.Abs(v.Len()-1) > eps {
		t.Errorf("length = %v, want 1", v.Len())
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero Vec2 should normalize to zero")
	}
}

func TestMat4TranslateMulVec3(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	got := m.MulVec3(V3(1, 1, 1))
	if !got.ApproxEqual(V3(2, 3, 4), eps) {
		t.Errorf("got %v, want (2, 3, 4)", got)
	}
}

func TestMat4RotateY(t *testing.T) {
	// A quarter turn about Y takes -Z to -X.
	got := RotateY(math.Pi / 2).MulVec3(V3(0, 0, -1))
	if !got.ApproxEqual(V3(-1, 0, 0), 1e-9) {
		t.Errorf("got %v, want (-1, 0, 0)", got)
	}
}

func TestOrientationForward(t *testing.T) {
	pitch, yaw := 0.3, -1.1
	o := Orientation(pitch, yaw)
	fwd := V3(-o[8], -o[9], -o[10])
	want := V3(-math.Sin(yaw)*math.Cos(pitch), math.Sin(pitch), -math.Cos(yaw)*math.Cos(pitch))
	if !fwd.ApproxEqual(want, eps) {
		t.Errorf("forward = %v, want %v", fwd, want)
	}

	composed := RotateY(yaw).Mul(RotateX(pitch))
	for i := range o {
		if math.Abs(o[i]-composed[i]) > eps {
			t.Fatalf("element %d = %v, want %v", i, o[i], composed[i])
		}
	}
}

func TestFirstPersonView(t *testing.T) {
	eye := V3(1.5, 1.6, -0.75)
	pitch, yaw := -0.2, 2.4

	got := FirstPersonView(eye, pitch, yaw)
	want := RotateX(-pitch).Mul(RotateY(-yaw)).Mul(Translate(eye.Negate()))
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("element %d = %v, want %v", i, got[i], want[i])
		}
	}

	// The eye maps to the origin and a point ahead lands on -Z.
	if o := got.MulVec3(eye); !o.ApproxEqual(Vec3{}, eps) {
		t.Errorf("eye in view space = %v, want origin", o)
	}
	o := Orientation(pitch, yaw)
	ahead := eye.Add(V3(-o[8], -o[9], -o[10]).Scale(2))
	if p := got.MulVec3(ahead); !p.ApproxEqual(V3(0, 0, -2), 1e-9) {
		t.Errorf("point ahead in view space = %v, want (0, 0, -2)", p)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(math.Pi/2, 1, 0.1, 100)

	near := p.MulVec4(V4(0, 0, -0.1, 1)).PerspectiveDivide()
	far := p.MulVec4(V4(0, 0, -100, 1)).PerspectiveDivide()

	if math.Abs(near.Z+1) > 1e-6 {
		t.Errorf("near plane NDC z = %v, want -1", near.Z)
	}
	if math.Abs(far.Z-1) > 1e-6 {
		t.Errorf("far plane NDC z = %v, want 1", far.Z)
	}
}

func TestAABBIntersect(t *testing.T) {
	box := NewAABB(V3(-1, -1, -6), V3(1, 1, -4))

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float64
	}{
		{"straight ahead", NewRay(V3(0, 0, 0), V3(0, 0, -1)), true, 4},
		{"behind", NewRay(V3(0, 0, 0), V3(0, 0, 1)), false, 0},
		{"miss to the side", NewRay(V3(5, 0, 0), V3(0, 0, -1)), false, 0},
		{"parallel inside slab", NewRay(V3(0, 0, -5), V3(1, 0, 0)), true, 1},
		{"grazing edge", NewRay(V3(1, 0, 0), V3(0, 0, -1)), true, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := box.Intersect(tc.ray)
			if ok != tc.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tc.wantHit)
			}
			if ok && math.Abs(d-tc.wantT) > eps {
				t.Errorf("distance = %v, want %v", d, tc.wantT)
			}
		})
	}
}

func TestAABBCornersAndContains(t *testing.T) {
	box := BoxAt(V3(0, 1, 0), V3(2, 2, 2))
	if box.Min != V3(-1, 0, -1) || box.Max != V3(1, 2, 1) {
		t.Fatalf("BoxAt = %+v", box)
	}

	for i, c := range box.Corners() {
		if !box.ContainsPoint(c) {
			t.Errorf("corner %d %v not contained", i, c)
		}
	}
	if box.ContainsPoint(V3(0, 3, 0)) {
		t.Error("point above box reported inside")
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(V3(0, 1.6, 0), V3(0, 0, -10))
	got := r.At(3)
	if !got.ApproxEqual(V3(0, 1.6, -3), eps) {
		t.Errorf("At(3) = %v", got)
	}
}
