package spectrum

import (
	"testing"

	"github.com/cwbudde/algo-specband/analyzer"
)

func BenchmarkFetchSpectrum(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"512", 512},
		{"2K", 2048},
		{"8K", 8192},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			s, err := New(testCase.size)
			if err != nil {
				b.Fatalf("New error: %v", err)
			}

			if err := s.Push(analyzer.ChannelLeft, sine(testCase.size, 8)); err != nil {
				b.Fatalf("Push error: %v", err)
			}

			dst := make([]float64, testCase.size)

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if err := s.FetchSpectrum(dst, analyzer.ChannelLeft); err != nil {
					b.Fatalf("FetchSpectrum error: %v", err)
				}
			}
		})
	}
}
