package rng

import "testing"

func TestSameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 200; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d diverged: %d vs %d", i, x, y)
		}
	}

	a, b = New(42), New(42)
	pa := []int{0, 1, 2, 3, 4, 5, 6, 7}
	pb := append([]int(nil), pa...)
	a.Shuffle(len(pa), func(i, j int) { pa[i], pa[j] = pa[j], pa[i] })
	b.Shuffle(len(pb), func(i, j int) { pb[i], pb[j] = pb[j], pb[i] })
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("shuffle diverged at %d: %v vs %v", i, pa, pb)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 50; i++ {
		if a.Intn(1 << 30) != b.Intn(1 << 30) {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 1 and 2 produced identical 50-draw streams")
	}
}

func TestIntnRange(t *testing.T) {
	src := New(7)
	for i := 0; i < 1000; i++ {
		if v := src.Intn(10); v < 0 || v >= 10 {
			t.Fatalf("Intn(10) = %d, out of range", v)
		}
	}
}
