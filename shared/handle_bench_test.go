package shared

import "testing"

func BenchmarkHandle_CopyRelease(b *testing.B) {
	h := Make(42)
	defer h.Release()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := h.Copy()
		c.Release()
	}
}

func BenchmarkHandle_Deref(b *testing.B) {
	h := Make(point{X: 1, Y: 2})
	defer h.Release()

	var sum int
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, _ := h.Deref()
		sum += p.X
	}
	_ = sum
}

func BenchmarkHandle_Clone(b *testing.B) {
	h := Make(point{X: 1, Y: 2})
	defer h.Release()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := h.Copy()
		c.Clone()
		c.Release()
	}
}
