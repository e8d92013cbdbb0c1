package dsp

import "testing"

func TestBucketizePartitionProperties(t *testing.T) {
	cases := []struct {
		binCount    int
		bucketCount int
	}{
		{1024, 64},
		{512, 32},
		{64, 16},
		{16, 8},
		{8, 4},
		{1024, 1},
	}

	for _, c := range cases {
		buckets := Bucketize(c.binCount, c.bucketCount)
		if len(buckets) != c.bucketCount {
			t.Fatalf("Bucketize(%d, %d): got %d buckets", c.binCount, c.bucketCount, len(buckets))
		}
		if buckets[0].Start != 1 {
			t.Errorf("Bucketize(%d, %d): first bucket starts at %d, want 1", c.binCount, c.bucketCount, buckets[0].Start)
		}
		if got := buckets[len(buckets)-1].End; got != c.binCount {
			t.Errorf("Bucketize(%d, %d): last bucket ends at %d, want %d", c.binCount, c.bucketCount, got, c.binCount)
		}
		for i, b := range buckets {
			if b.End <= b.Start {
				t.Errorf("Bucketize(%d, %d): bucket %d is empty [%d,%d)", c.binCount, c.bucketCount, i, b.Start, b.End)
			}
			if i > 0 {
				prev := buckets[i-1]
				if b.Start != prev.End {
					t.Errorf("Bucketize(%d, %d): gap or overlap between bucket %d and %d: [%d,%d) then [%d,%d)",
						c.binCount, c.bucketCount, i-1, i, prev.Start, prev.End, b.Start, b.End)
				}
				if b.Start <= prev.Start {
					t.Errorf("Bucketize(%d, %d): starts not strictly increasing at bucket %d", c.binCount, c.bucketCount, i)
				}
			}
		}
	}
}

func TestBucketizeScenario2048FFT(t *testing.T) {
	// frameSize 2048 yields 1024 bins.
	buckets := Bucketize(1024, 64)
	if len(buckets) != 64 {
		t.Fatalf("got %d buckets, want 64", len(buckets))
	}
	if buckets[0].Start != 1 {
		t.Errorf("first bucket starts at %d, want 1", buckets[0].Start)
	}
	if buckets[63].End != 1024 {
		t.Errorf("last bucket ends at %d, want 1024", buckets[63].End)
	}
}

func TestBucketizeBucketCountEqualsBinCount(t *testing.T) {
	// With one bucket per bin the forced minimum widths consume the range
	// early; every bucket is a single bin and the last one may end up empty,
	// still pinned to binCount. Callers treat an empty bucket as silence.
	for _, n := range []int{8, 16} {
		buckets := Bucketize(n, n)
		if len(buckets) != n {
			t.Fatalf("Bucketize(%d, %d): got %d buckets", n, n, len(buckets))
		}
		for i, b := range buckets {
			if b.Start != i+1 {
				t.Fatalf("Bucketize(%d, %d): bucket %d starts at %d, want %d", n, n, i, b.Start, i+1)
			}
			if i < n-1 && b.End != b.Start+1 {
				t.Errorf("Bucketize(%d, %d): bucket %d is [%d,%d), want single bin", n, n, i, b.Start, b.End)
			}
		}
		if got := buckets[n-1].End; got != n {
			t.Errorf("Bucketize(%d, %d): last bucket ends at %d, want %d", n, n, got, n)
		}
	}
}

func TestBucketizeDegenerateInputs(t *testing.T) {
	if got := Bucketize(1, 4); got != nil {
		t.Errorf("expected nil for single-bin input, got %v", got)
	}
	if got := Bucketize(1024, 0); got != nil {
		t.Errorf("expected nil for zero buckets, got %v", got)
	}
}

func TestBinToPositionZeroIndexAliasing(t *testing.T) {
	for _, n := range []int{16, 512, 1024} {
		for _, h := range []int{10, 64, 200} {
			if p0, p1 := BinToPosition(0, n, h), BinToPosition(1, n, h); p0 != p1 {
				t.Errorf("BinToPosition(0, %d, %d) = %d, BinToPosition(1, ...) = %d; want equal", n, h, p0, p1)
			}
		}
	}
}

func TestBinToPositionOrientation(t *testing.T) {
	const n, h = 1024, 80
	if got := BinToPosition(n, n, h); got != 0 {
		t.Errorf("highest bin maps to row %d, want 0", got)
	}
	if got := BinToPosition(1, n, h); got != h-1 {
		t.Errorf("bin 1 maps to row %d, want %d", got, h-1)
	}
}

func TestBinToPositionBounds(t *testing.T) {
	const n, h = 512, 48
	for bin := -1; bin <= n+1; bin++ {
		row := BinToPosition(bin, n, h)
		if row < 0 || row > h-1 {
			t.Fatalf("BinToPosition(%d, %d, %d) = %d out of [0,%d]", bin, n, h, row, h-1)
		}
	}
}

func TestBinToPositionMonotonic(t *testing.T) {
	const n, h = 1024, 64
	prev := BinToPosition(1, n, h)
	for bin := 2; bin <= n; bin++ {
		row := BinToPosition(bin, n, h)
		if row > prev {
			t.Fatalf("row increased from %d to %d at bin %d; higher bins must render at or above lower bins", prev, row, bin)
		}
		prev = row
	}
}
