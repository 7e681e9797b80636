// Command bandinfo prints the bucket partition used by the spectral
// band analyzer.
//
// Usage:
//
//	bandinfo [flags]
//
// Without flags it prints both the 8-band and the 64-band scheme.
//
// Examples:
//
//	bandinfo
//	bandinfo -bands 64
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-specband/analyzer"
)

func main() {
	bands := flag.Int("bands", 0, "band count to print (8 or 64); 0 prints both")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bandinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the bucket partition of the spectral band analyzer.\n")
		fmt.Fprintf(os.Stderr, "Each band averages a geometrically growing slice of FFT bins,\n")
		fmt.Fprintf(os.Stderr, "divided by the cumulative bin count up to that band.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var counts []int
	switch *bands {
	case 0:
		counts = []int{analyzer.BandCount8, analyzer.BandCount64}
	case analyzer.BandCount8, analyzer.BandCount64:
		counts = []int{*bands}
	default:
		fmt.Fprintf(os.Stderr, "bandinfo: band count must be 8 or 64: %d\n", *bands)
		os.Exit(2)
	}

	for _, count := range counts {
		if err := printPartition(count); err != nil {
			fmt.Fprintf(os.Stderr, "bandinfo: %v\n", err)
			os.Exit(1)
		}
	}
}

func printPartition(bandCount int) error {
	buckets, err := analyzer.Partition(bandCount)
	if err != nil {
		return err
	}

	minSamples, err := analyzer.MinSampleCount(bandCount)
	if err != nil {
		return err
	}

	fmt.Printf("%d-band scheme (minimum sample count %d)\n", bandCount, minSamples)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Band\tWidth\tBins\tDenominator")

	for i, b := range buckets {
		fmt.Fprintf(w, "%d\t%d\t[%d,%d)\t%d\n", i, b.Width, b.Start, b.Start+b.Width, b.Cumulative)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()

	return nil
}
