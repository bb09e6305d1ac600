// Package csvsink writes emitted median rows to the output CSV file.
package csvsink

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"medianflow/emit"
)

// FileName is the name of the output file inside the output directory.
const FileName = "price_median.csv"

// Header is the output file's header line.
const Header = "receive_ts;price_median"

var (
	// ErrCreateDir reports a failure to create the output directory.
	ErrCreateDir = errors.New("create output directory")

	// ErrOpenFile reports a failure to open the output file for writing.
	ErrOpenFile = errors.New("open output file")
)

// Write creates dir if needed, then writes the records to FileName inside it:
// the header line followed by one <receive_ts>;<median> line per record. It
// returns the full path of the written file. Directory-creation and file-open
// failures are distinguishable via ErrCreateDir and ErrOpenFile.
func Write(dir string, records []emit.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrCreateDir, dir, err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrOpenFile, path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	for _, rec := range records {
		if _, err := fmt.Fprintf(w, "%d;%s\n", rec.ReceiveTS, rec.Median); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
