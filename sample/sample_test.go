package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	for _, name := range names {
		err := os.WriteFile(filepath.Join(dir, name), nil, 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestVerifyDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "S1_R1_001.fastq.gz", "S1_R2_001.fastq.gz", "samplesheet.csv")
	if err := VerifyDir(dir); err != nil {
		t.Error("unexpected error:", err)
	}

	touch(t, dir, "notes.txt")
	if err := VerifyDir(dir); err == nil {
		t.Error("expected an error for a non-fastq file")
	}
}

func TestDiscoverPairs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"S2_R2_001.fastq.gz",
		"S2_R1_001.fastq.gz",
		"S1_2.fastq.gz",
		"S1_1.fastq.gz",
	)

	pairs, err := DiscoverPairs(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatal("expected 2 pairs, got", len(pairs))
	}
	if pairs[0].Sample != "S1" || pairs[1].Sample != "S2" {
		t.Error("pairs not sorted by sample:", pairs)
	}
	if filepath.Base(pairs[0].R1) != "S1_1.fastq.gz" || filepath.Base(pairs[0].R2) != "S1_2.fastq.gz" {
		t.Error("wrong read order for S1:", pairs[0])
	}
	if filepath.Base(pairs[1].R1) != "S2_R1_001.fastq.gz" {
		t.Error("wrong R1 for S2:", pairs[1])
	}
}

func TestDiscoverPairsTooManyFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"S1_R1_001.fastq.gz",
		"S1_R2_001.fastq.gz",
		"S1_R1_002.fastq.gz",
	)
	_, err := DiscoverPairs(dir)
	if err == nil {
		t.Fatal("expected an error for 3 files of one sample")
	}
	if !strings.Contains(err.Error(), "concatenate") {
		t.Error("error should tell the user to concatenate lanes:", err)
	}
}

func TestDiscoverPairsUnpaired(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "S1_R1_001.fastq.gz")
	if _, err := DiscoverPairs(dir); err == nil {
		t.Error("expected an error for a lone R1 file")
	}
}

func TestSplitName(t *testing.T) {
	name, read, ok := splitName("SampleA_S3_R2_001.fastq.gz")
	if !ok || name != "SampleA_S3" || read != 2 {
		t.Errorf("got %q read %d ok %v", name, read, ok)
	}
	name, read, ok = splitName("SampleB_1.fastq.gz")
	if !ok || name != "SampleB" || read != 1 {
		t.Errorf("got %q read %d ok %v", name, read, ok)
	}
	_, _, ok = splitName("README.fastq.gz")
	if ok {
		t.Error("expected no read designator in README.fastq.gz")
	}
}
