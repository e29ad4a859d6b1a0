package occult

import "testing"

func benchZ(n int) []float64 {
	z := make([]float64, n)
	for i := range z {
		z[i] = 1.3 * float64(i) / float64(n)
	}
	return z
}

func BenchmarkEvalQuad(b *testing.B) {
	z := benchZ(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EvalQuad(z, 0.1, 0.3, 0.2, 1)
	}
}

func BenchmarkEvalQuadParallel(b *testing.B) {
	z := benchZ(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EvalQuad(z, 0.1, 0.3, 0.2, 0)
	}
}

func BenchmarkTableEvalQuad(b *testing.B) {
	tab := BuildTable(0.07, 0.13, 128, 256, 0)
	z := benchZ(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tab.EvalQuad(z, 0.1, 0.3, 0.2, 1)
	}
}

func BenchmarkBuildTable(b *testing.B) {
	for i := 0; i < b.N; i++ {
		BuildTable(0.07, 0.13, 128, 256, 0)
	}
}
