package analyzer

import "fmt"

// Supported band aggregation granularities.
const (
	BandCount8  = 8
	BandCount64 = 64
)

// Indices at which the 64-band bucket width accumulator grows. At each
// index the correction term 2^k is added, with k counting these growth
// points starting at 1, so the width doubles: 2, 4, 8, 16, 32, 64.
var bandWidthGrowth = map[int]bool{
	16: true,
	32: true,
	40: true,
	46: true,
	48: true,
}

// Bucket describes one band's slice of the magnitude spectrum.
type Bucket struct {
	// Start is the first bin index of the bucket.
	Start int
	// Width is the number of bins in the bucket.
	Width int
	// Cumulative is the total number of bins consumed up to and
	// including this bucket. Band averages divide by this running
	// count, not by the bucket's own width.
	Cumulative int
}

// bucketWidths returns the per-band bin widths for the given band count.
//
// The 8-band scheme uses widths 2^i*2 with two extra bins on the last
// band. The 64-band scheme starts at width 2 and doubles at the growth
// indices above.
func bucketWidths(bandCount int) ([]int, error) {
	switch bandCount {
	case BandCount8:
		widths := make([]int, BandCount8)
		for i := range widths {
			widths[i] = 2 << i
		}
		widths[BandCount8-1] += 2

		return widths, nil

	case BandCount64:
		widths := make([]int, BandCount64)
		width := 2
		k := 0

		for i := range widths {
			if bandWidthGrowth[i] {
				k++
				width += 1 << k
			}
			widths[i] = width
		}

		return widths, nil

	default:
		return nil, fmt.Errorf("analyzer band count must be 8 or 64: %d", bandCount)
	}
}

// Partition returns the bucket layout for the given band count.
func Partition(bandCount int) ([]Bucket, error) {
	widths, err := bucketWidths(bandCount)
	if err != nil {
		return nil, err
	}

	buckets := make([]Bucket, len(widths))
	pos := 0

	for i, w := range widths {
		buckets[i] = Bucket{Start: pos, Width: w, Cumulative: pos + w}
		pos += w
	}

	return buckets, nil
}

// MinSampleCount returns the number of magnitude bins the bucket
// partition of the given band count consumes.
func MinSampleCount(bandCount int) (int, error) {
	widths, err := bucketWidths(bandCount)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, w := range widths {
		total += w
	}

	return total, nil
}
