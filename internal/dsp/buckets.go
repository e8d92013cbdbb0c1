package dsp

import "math"

// Bucket is a contiguous range of FFT bins grouped together for bar display.
// Start is inclusive, End exclusive.
type Bucket struct {
	Start int
	End   int
}

// Bucketize partitions bins [1, binCount) into bucketCount buckets whose
// boundaries are log-spaced, so each bar covers roughly the same musical
// interval. Bin 0 (DC) is excluded since the log scale is undefined there.
// Boundaries are floored and every bucket is forced to span at least one bin,
// so low bin counts produce unequal widths rather than empty buckets. The
// last bucket always ends at binCount.
func Bucketize(binCount, bucketCount int) []Bucket {
	if binCount < 2 || bucketCount < 1 {
		return nil
	}

	buckets := make([]Bucket, bucketCount)
	logMax := math.Log(float64(binCount))

	start := 1
	for i := 0; i < bucketCount; i++ {
		t := float64(i+1) / float64(bucketCount)
		end := int(math.Exp(logMax * t))
		if end <= start {
			end = start + 1
		}
		if end > binCount {
			end = binCount
		}
		if i == bucketCount-1 {
			end = binCount
		}
		buckets[i] = Bucket{Start: start, End: end}
		start = end
	}
	return buckets
}

// BinToPosition maps a bin index to a vertical pixel row using the same log
// normalization as Bucketize. Bin 0 is treated as bin 1. The result is
// inverted: the highest bin maps to row 0, bin 1 to the bottom row. Always
// returns a row in [0, height-1].
func BinToPosition(bin, binCount, height int) int {
	if height < 1 {
		return 0
	}
	if binCount < 2 {
		return height - 1
	}
	if bin < 1 {
		bin = 1
	}
	if bin > binCount {
		bin = binCount
	}

	norm := math.Log(float64(bin)) / math.Log(float64(binCount))
	row := int(math.Round((1 - norm) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row > height-1 {
		row = height - 1
	}
	return row
}
