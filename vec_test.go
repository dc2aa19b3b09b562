package ribbon

import "testing"

func TestVec3_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		got    Vec3
		expect Vec3
	}{
		{"add", V3(1, 2, 3).Add(V3(4, 5, 6)), V3(5, 7, 9)},
		{"sub", V3(4, 5, 6).Sub(V3(1, 2, 3)), V3(3, 3, 3)},
		{"mul", V3(1, -2, 3).Mul(2), V3(2, -4, 6)},
		{"min", V3(1, 5, -3).Min(V3(2, 4, -4)), V3(1, 4, -4)},
		{"max", V3(1, 5, -3).Max(V3(2, 4, -4)), V3(2, 5, -3)},
		{"reflect", V3(0, 0, 0).Reflect(V3(1, 0, 0)), V3(-1, 0, 0)},
		{"reflect offset", V3(2, 1, 0).Reflect(V3(1, 0, 0)), V3(3, 2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Approx(tt.expect, 1e-6) {
				t.Errorf("got %v, want %v", tt.got, tt.expect)
			}
		})
	}
}

func TestVec3_Length(t *testing.T) {
	if got := V3(2, 3, 6).Length(); got != 7 {
		t.Errorf("Length() = %v, want 7", got)
	}
}
