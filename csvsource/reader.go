// Package csvsource loads price observations from directories of
// semicolon-delimited CSV files.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"medianflow/replay"
)

var (
	// ErrNotDirectory reports that the configured input path exists but is
	// not a directory.
	ErrNotDirectory = errors.New("input path is not a directory")

	// ErrMissingColumns reports a CSV header without the required
	// receive_ts and price columns.
	ErrMissingColumns = errors.New("missing required columns receive_ts and price")
)

// Reader scans a directory for CSV sources and decodes them into
// observations. A file qualifies when it has a .csv extension
// (case-insensitive) and its name contains at least one of the configured
// mask substrings; an empty mask list selects every CSV file.
type Reader struct {
	masks []string
}

// NewReader creates a Reader with the given filename masks.
func NewReader(masks []string) *Reader {
	return &Reader{masks: masks}
}

// ReadDir reads every qualifying CSV file in dir and returns the combined
// observations. Files are read concurrently; the result carries no ordering
// guarantee and must be sequenced before replay. Any unreadable or malformed
// file fails the whole read.
func (r *Reader) ReadDir(dir string) ([]replay.Observation, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		if !r.selected(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	results := make([][]replay.Observation, len(files))
	g := new(errgroup.Group)
	for i := range files {
		i, path := i, files[i]
		g.Go(func() error {
			observations, err := ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = observations
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var observations []replay.Observation
	for _, batch := range results {
		observations = append(observations, batch...)
	}
	return observations, nil
}

func (r *Reader) selected(name string) bool {
	if len(r.masks) == 0 {
		return true
	}
	for _, mask := range r.masks {
		if strings.Contains(name, mask) {
			return true
		}
	}
	return false
}

// ReadFile decodes one semicolon-delimited CSV file. The header row must
// contain receive_ts and price columns, in any position; other columns are
// ignored. An empty file yields no observations. Each observation's Origin is
// the file path and Seq its line number, which the sequencer uses to break
// timestamp ties deterministically.
func ReadFile(path string) ([]replay.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = ';'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	tsIdx, priceIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "receive_ts":
			tsIdx = i
		case "price":
			priceIdx = i
		}
	}
	if tsIdx < 0 || priceIdx < 0 {
		return nil, fmt.Errorf("%w in %s", ErrMissingColumns, path)
	}

	var observations []replay.Observation
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		line, _ := cr.FieldPos(0)
		ts, err := strconv.ParseUint(strings.TrimSpace(fields[tsIdx]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid receive_ts %q", path, line, fields[tsIdx])
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(fields[priceIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid price %q", path, line, fields[priceIdx])
		}

		observations = append(observations, replay.Observation{
			ReceiveTS: ts,
			Price:     price,
			Origin:    path,
			Seq:       uint64(line),
		})
	}
	return observations, nil
}
