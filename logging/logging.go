// Package logging provides the wrapper log: a prefixed logger that writes
// to stderr and, optionally, a timestamped logfile. The logger doubles as
// an io.Writer so output from child pipeline processes lands in the same
// log stream.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const prefix string = "[qd-rnaseq] "

type Logger struct {
	*log.Logger
}

// Write lets a Logger be attached directly to the stdout/stderr of an
// exec.Cmd, so pipeline output is timestamped and prefixed like all
// other wrapper output.
func (l *Logger) Write(b []byte) (int, error) {
	l.Logger.Print(string(b))
	return len(b), nil
}

// NewConsole returns a logger writing to stderr only.
func NewConsole() *Logger {
	return &Logger{Logger: log.New(os.Stderr, prefix, log.Ldate|log.Ltime)}
}

// New returns a logger writing to stderr and to a timestamped logfile in
// logDir, which is created if absent. The logfile path is returned so it
// can be reported to the user.
func New(logDir string) (*Logger, string, error) {
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, "", errors.Wrapf(err, "creating log dir %s", logDir)
	}
	logfile := filepath.Join(logDir, "qd-rnaseq-wrapper_"+time.Now().Format("060102_150405")+".log")
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, "", errors.Wrapf(err, "opening logfile %s", logfile)
	}
	return &Logger{Logger: log.New(io.MultiWriter(os.Stderr, f), prefix, log.Ldate|log.Ltime)}, logfile, nil
}
