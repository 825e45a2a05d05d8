package trace

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RowWriter receives period rows as the simulation produces them.
type RowWriter interface {
	WritePeriod(record PeriodRecord) error
	Close() error
}

// SessionWriter streams period rows into a CSV session file. Each run gets
// a fresh file named by its session ID.
type SessionWriter struct {
	SessionID string
	Path      string

	file *os.File
	csv  *csv.Writer
}

// csvHeader matches the column order of WritePeriod.
var csvHeader = []string{
	"time_s", "period_s",
	"conn_s", "no_serv_s", "interfered_s",
	"conn_duration_s", "int_free_duration_s",
	"conn_perc", "outage_perc", "interfered_perc",
}

// NewSessionWriter creates the session file under dir and writes the header
// row. The session ID doubles as the file name suffix.
func NewSessionWriter(dir string) (*SessionWriter, error) {
	sessionID := uuid.NewString()
	path := filepath.Join(dir, fmt.Sprintf("session-%s.csv", sessionID))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create session file: %w", err)
	}
	w := &SessionWriter{
		SessionID: sessionID,
		Path:      path,
		file:      file,
		csv:       csv.NewWriter(file),
	}
	if err := w.csv.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("write session header: %w", err)
	}
	return w, nil
}

// WritePeriod appends one period row and flushes it to disk, so a killed
// run still leaves a usable session file.
func (w *SessionWriter) WritePeriod(r PeriodRecord) error {
	ticksToSec := func(t int64) string { return fmt.Sprintf("%.2f", float64(t)/1000.0) }
	row := []string{
		ticksToSec(r.Clock),
		ticksToSec(r.PeriodDuration),
		ticksToSec(r.Connected),
		ticksToSec(r.Disconnected),
		ticksToSec(r.Interfered),
		fmt.Sprintf("%.2f", r.MeanConnDuration/1000.0),
		fmt.Sprintf("%.2f", r.MeanInterferenceFree/1000.0),
		fmt.Sprintf("%.2f", r.ConnectedPct()),
		fmt.Sprintf("%.2f", r.DisconnectedPct()),
		fmt.Sprintf("%.2f", r.InterferedPct()),
	}
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("write period row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the session file.
func (w *SessionWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
