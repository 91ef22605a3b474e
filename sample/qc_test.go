package sample

import (
	"os"
	"path/filepath"
	"testing"
)

// quality I is phred 40, quality 5 is phred 20
var testR1 string = "@read1\nACGT\n+\nIIII\n@read2\nTTTT\n+\nIIII\n"
var testR2 string = "@read1\nCCCC\n+\n5555\n@read2\nGGGG\n+\n5555\n"

func writeFastqPair(t *testing.T) Pair {
	dir := t.TempDir()
	r1 := filepath.Join(dir, "r1.fastq")
	r2 := filepath.Join(dir, "r2.fastq")
	if err := os.WriteFile(r1, []byte(testR1), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(r2, []byte(testR2), 0644); err != nil {
		t.Fatal(err)
	}
	return Pair{Sample: "test", R1: r1, R2: r2}
}

func TestPairQC(t *testing.T) {
	qc := PairQC(writeFastqPair(t), 0)

	if qc.Pairs != 2 {
		t.Error("expected 2 read pairs, got", qc.Pairs)
	}
	if qc.MeanLength != 4 {
		t.Error("expected mean length 4, got", qc.MeanLength)
	}
	if qc.MeanQuality != 30 {
		t.Error("expected mean quality 30, got", qc.MeanQuality)
	}
	if len(qc.CycleMeanFwd) != 4 || qc.CycleMeanFwd[0] != 40 {
		t.Error("wrong forward cycle means:", qc.CycleMeanFwd)
	}
	if len(qc.CycleMeanRev) != 4 || qc.CycleMeanRev[3] != 20 {
		t.Error("wrong reverse cycle means:", qc.CycleMeanRev)
	}
}

func TestPairQCLimit(t *testing.T) {
	qc := PairQC(writeFastqPair(t), 1)
	if qc.Pairs != 1 {
		t.Error("expected 1 sampled pair, got", qc.Pairs)
	}
}

func TestQualityGraph(t *testing.T) {
	qc := PairQC(writeFastqPair(t), 0)
	if qc.QualityGraph() == "" {
		t.Error("expected a non-empty graph")
	}
}
