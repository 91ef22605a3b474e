package tracker

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysed.txt")
	track, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = os.Stat(path); err != nil {
		t.Error("expected tracking file to be created")
	}
	if track.IsProcessed("S1") {
		t.Error("empty tracker should not contain S1")
	}
}

func TestMarkProcessed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysed.txt")
	track, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	if err = track.MarkProcessed("S1"); err != nil {
		t.Fatal(err)
	}
	if !track.IsProcessed("S1") {
		t.Error("S1 should be marked processed")
	}

	// marking twice must not duplicate the record
	if err = track.MarkProcessed("S1"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "S1\n" {
		t.Errorf("expected a single line for S1, got %q", string(data))
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysed.txt")
	track, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err = track.MarkProcessed("S1"); err != nil {
		t.Fatal(err)
	}
	if err = track.MarkProcessed("S2"); err != nil {
		t.Fatal(err)
	}

	reloaded, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsProcessed("S1") || !reloaded.IsProcessed("S2") {
		t.Error("reloaded tracker lost records")
	}
	if reloaded.IsProcessed("S3") {
		t.Error("reloaded tracker contains unknown sample")
	}

	samples := reloaded.Samples()
	if len(samples) != 2 || samples[0] != "S1" || samples[1] != "S2" {
		t.Error("wrong sample list:", samples)
	}
}
