package reader

import (
	"fmt"
	"testing"

	"github.com/joshuapare/trophykit/internal/testutil"
)

func benchProgress(n int) []byte {
	grades := make([]testutil.Grade, n)
	unlocks := make([]testutil.Unlock, n)
	for i := range n {
		grades[i] = testutil.Grade{ID: uint32(i), Grade: uint32(i%4 + 1)}
		unlocks[i] = testutil.Unlock{ID: uint32(i), State: uint32(i % 2), TS2: testutil.TicksEpoch + uint64(i)*1_000_000}
	}
	return testutil.NewProgress().AddGrades(grades...).AddUnlocks(unlocks...).Bytes()
}

func BenchmarkDecode(b *testing.B) {
	for _, n := range []int{16, 64, 512} {
		img := benchProgress(n)
		b.Run(fmt.Sprintf("trophies=%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(img)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Decode(img, Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
