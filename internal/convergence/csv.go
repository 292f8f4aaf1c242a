package convergence

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
)

// Header is the first row of every CSV log file.
var Header = []string{"num_points", "pi_estimate"}

// CSVLog stores records in a comma-separated text file:
//
//	num_points,pi_estimate
//	100,3.1
//	200,3.14
//
// Floats are written in plain decimal with the shortest representation
// that round-trips. The file is created (with its header) on first Append
// and removed by Reset.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVLog returns a log backed by the file at path. The file is not
// touched until the first call.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Path returns the backing file path.
func (l *CSVLog) Path() string {
	return l.path
}

func (l *CSVLog) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("append %s: %w: %w", l.path, ErrStorageUnavailable, err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("append %s: %w: %w", l.path, ErrStorageUnavailable, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w: %w", l.path, ErrStorageUnavailable, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			f.Close()
			return fmt.Errorf("append %s: header: %w: %w", l.path, ErrStorageUnavailable, err)
		}
	}
	row := []string{
		strconv.Itoa(rec.NumPoints),
		strconv.FormatFloat(rec.PiEstimate, 'f', -1, 64),
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("append %s: %w: %w", l.path, ErrStorageUnavailable, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("append %s: flush: %w: %w", l.path, ErrStorageUnavailable, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("append %s: close: %w: %w", l.path, ErrStorageUnavailable, err)
	}
	return nil
}

func (l *CSVLog) ReadAll(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", l.path, ErrStorageUnavailable, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err != nil || info.IsDir() {
		return nil, fmt.Errorf("read %s: not a regular file: %w", l.path, ErrStorageUnavailable)
	}
	return decodeCSV(f, l.path)
}

func (l *CSVLog) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	err := os.Remove(l.path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reset %s: %w: %w", l.path, ErrStorageUnavailable, err)
}

// decodeCSV parses a full log file. An empty file is treated as an absent log.
func decodeCSV(r io.Reader, name string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: header: %w: %w", name, ErrMalformedLog, err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("read %s: unexpected header %v: %w", name, header, ErrMalformedLog)
	}

	records := []Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", name, ErrMalformedLog, err)
		}

		line, _ := cr.FieldPos(0)
		n, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: line %d: num_points %q: %w", name, line, row[0], ErrMalformedLog)
		}
		pi, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("read %s: line %d: pi_estimate %q: %w", name, line, row[1], ErrMalformedLog)
		}
		records = append(records, Record{NumPoints: n, PiEstimate: pi})
	}

	return records, nil
}
