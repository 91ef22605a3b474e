// Package tracker records which samples have already been analysed in a
// flat text file, one sample id per line. The file is append-only and
// assumes a single wrapper process writing at a time.
package tracker

import (
	"os"

	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
)

type Tracker struct {
	path string
	done map[string]bool
}

// New loads the tracking file at path, creating it if absent.
func New(path string) (*Tracker, error) {
	t := &Tracker{path: path, done: make(map[string]bool)}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "creating tracking file %s", path)
		}
		if err = f.Close(); err != nil {
			return nil, errors.Wrapf(err, "creating tracking file %s", path)
		}
		return t, nil
	}

	file := fileio.EasyOpen(path)
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		t.done[line] = true
	}
	if err := file.Close(); err != nil {
		return nil, errors.Wrapf(err, "reading tracking file %s", path)
	}
	return t, nil
}

// IsProcessed reports whether sample id is already recorded.
func (t *Tracker) IsProcessed(id string) bool {
	return t.done[id]
}

// MarkProcessed appends id to the tracking file. Marking an id that is
// already recorded is a no-op, so an id appears at most once per wrapper
// process.
func (t *Tracker) MarkProcessed(id string) error {
	if t.done[id] {
		return nil
	}
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening tracking file %s", t.path)
	}
	if _, err = f.WriteString(id + "\n"); err != nil {
		f.Close()
		return errors.Wrapf(err, "appending to tracking file %s", t.path)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "appending to tracking file %s", t.path)
	}
	t.done[id] = true
	return nil
}

// Samples returns all recorded sample ids in sorted order.
func (t *Tracker) Samples() []string {
	ans := make([]string, 0, len(t.done))
	for id := range t.done {
		ans = append(ans, id)
	}
	slices.Sort(ans)
	return ans
}
