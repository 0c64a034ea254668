package index

import (
	"strings"
	"testing"
)

var benchWords = strings.Fields("benchmark document with several terms for measuring the indexing cost of the memory index")

func BenchmarkMemoryIndexAdd(b *testing.B) {
	m := NewMemoryIndex()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Add(i, benchWords, StatusActual, 0)
	}
}

func BenchmarkMemoryIndexAddRemove(b *testing.B) {
	m := NewMemoryIndex()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Add(i, benchWords, StatusActual, 0)
		m.Remove(i)
	}
}

func BenchmarkPostingsParallel(b *testing.B) {
	m := NewMemoryIndex()
	for i := 0; i < 10000; i++ {
		_ = m.Add(i, benchWords, StatusActual, 0)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.View(func(v *ReadView) {
				docs, _ := v.Postings("memory")
				_ = len(docs)
			})
		}
	})
}
