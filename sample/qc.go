package sample

import (
	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/fastq"
	"gonum.org/v1/gonum/stat"
)

// QC summarizes a fastq pair: read pair count, read length, per-read mean
// base quality, and per-cycle mean quality for each mate.
type QC struct {
	Pairs        int
	MeanLength   float64
	MeanQuality  float64
	StdevQuality float64
	CycleMeanFwd []float64
	CycleMeanRev []float64
}

// PairQC streams up to maxPairs read pairs (0 for all) from p and computes
// summary statistics. Malformed fastq records panic, as elsewhere in the
// fastq handling.
func PairQC(p Pair, maxPairs int) QC {
	readPairs := make(chan fastq.PairedEnd, 1000)
	go fastq.PairedEndToChan(p.R1, p.R2, readPairs)

	var ans QC
	var lengths, readMeans []float64
	var fwdSums, revSums []float64
	var fwdCounts, revCounts []int

	for pair := range readPairs {
		if maxPairs > 0 && ans.Pairs >= maxPairs {
			continue // keep draining so the reader goroutine can finish
		}
		ans.Pairs++
		lengths = append(lengths, float64(len(pair.Fwd.Seq)), float64(len(pair.Rev.Seq)))
		readMeans = append(readMeans, meanQual(pair.Fwd.Qual), meanQual(pair.Rev.Qual))
		fwdSums, fwdCounts = addCycles(fwdSums, fwdCounts, pair.Fwd.Qual)
		revSums, revCounts = addCycles(revSums, revCounts, pair.Rev.Qual)
	}

	ans.MeanLength = stat.Mean(lengths, nil)
	ans.MeanQuality = stat.Mean(readMeans, nil)
	ans.StdevQuality = stat.StdDev(readMeans, nil)
	ans.CycleMeanFwd = cycleMeans(fwdSums, fwdCounts)
	ans.CycleMeanRev = cycleMeans(revSums, revCounts)
	return ans
}

// QualityGraph renders the per-cycle mean quality of both mates as an
// ascii plot for terminal output.
func (q QC) QualityGraph() string {
	return asciigraph.PlotMany([][]float64{q.CycleMeanFwd, q.CycleMeanRev},
		asciigraph.Height(10),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(
			asciigraph.Blue,
			asciigraph.Red,
		))
}

func meanQual(qual []uint8) float64 {
	if len(qual) == 0 {
		return 0
	}
	var sum int
	for i := range qual {
		sum += int(qual[i])
	}
	return float64(sum) / float64(len(qual))
}

func addCycles(sums []float64, counts []int, qual []uint8) ([]float64, []int) {
	for len(sums) < len(qual) {
		sums = append(sums, 0)
		counts = append(counts, 0)
	}
	for i := range qual {
		sums[i] += float64(qual[i])
		counts[i]++
	}
	return sums, counts
}

func cycleMeans(sums []float64, counts []int) []float64 {
	ans := make([]float64, len(sums))
	for i := range sums {
		if counts[i] > 0 {
			ans[i] = sums[i] / float64(counts[i])
		}
	}
	return ans
}
