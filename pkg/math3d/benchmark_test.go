package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := RotateAbout(RotateX(0.2).Mul(RotateY(0.3)), V3(50, 50, 50))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkCalcNormal(b *testing.B) {
	v1, v2, v3 := V3(0, 0, 0), V3(1, 0, 0), V3(1, 1, 0)

	for b.Loop() {
		_, _ = CalcNormal(v1, v2, v3)
	}
}

func BenchmarkRingNormalDegenerateHead(b *testing.B) {
	ring := []Vec3{V3(0, 0, 0), V3(0, 0, 0), V3(0, 0, 0), V3(1, 0, 0), V3(1, 1, 0), V3(0, 1, 0)}

	for b.Loop() {
		_, _ = RingNormal(ring)
	}
}

func BenchmarkNewellNormal(b *testing.B) {
	ring := []Vec3{V3(0, 0, 0), V3(1, 0, 0), V3(1, 1, 0), V3(0.5, 0.2, 0), V3(0, 1, 0)}

	for b.Loop() {
		_ = NewellNormal(ring)
	}
}
