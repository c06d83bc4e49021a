// Package trace turns controller events into log lines and an optional CSV
// event log.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"trafficctl/internal/traffic"
)

// Recorder consumes a controller event stream.
type Recorder struct {
	runID   string
	logger  *log.Logger
	verbose bool

	csvFile   io.Closer
	csvWriter *csv.Writer

	counts map[traffic.EventKind]int
}

// New creates a recorder that writes log lines to logger. A nil logger
// discards them.
func New(logger *log.Logger, verbose bool) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Recorder{
		runID:   uuid.New().String(),
		logger:  logger,
		verbose: verbose,
		counts:  make(map[traffic.EventKind]int),
	}
}

// RunID identifies this run in log lines and CSV records.
func (r *Recorder) RunID() string { return r.runID }

// EnableCSV opens path and writes the CSV header.
// Must be called before Consume.
func (r *Recorder) EnableCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("event log: %w", err)
	}
	if err := r.attachCSV(f, f); err != nil {
		f.Close()
		return err
	}
	return nil
}

func (r *Recorder) attachCSV(w io.Writer, c io.Closer) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"timestamp", "run_id", "tick", "event", "phase", "pedestrian"})
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("event log: %w", err)
	}
	r.csvFile = c
	r.csvWriter = cw
	return nil
}

// Consume handles events until ch is closed, then closes the CSV log.
func (r *Recorder) Consume(ch <-chan traffic.Event) error {
	for ev := range ch {
		r.Handle(ev)
	}
	if r.csvWriter != nil {
		r.csvWriter.Flush()
		if err := r.csvWriter.Error(); err != nil {
			return err
		}
	}
	if r.csvFile != nil {
		return r.csvFile.Close()
	}
	return nil
}

// Counts returns how many events of each kind have been handled.
func (r *Recorder) Counts() map[traffic.EventKind]int {
	out := make(map[traffic.EventKind]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Handle records one event.
func (r *Recorder) Handle(ev traffic.Event) {
	r.counts[ev.Kind]++

	// pedestrian toggles during the yellow blink are noisy; keep them
	// out of the log unless asked for
	if ev.Kind == traffic.EventPedestrian && !r.verbose {
		r.writeCSV(ev)
		return
	}

	center := func(str string, width int) string {
		spaces := (width - len(str)) / 2
		if spaces < 0 {
			spaces = 0
		}
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", max(0, width-(spaces+len(str))))
	}

	msg := fmt.Sprintf("tick %04d [%s] phase=%-6s pedestrian=%s",
		ev.Tick,
		center(ev.Kind.String(), 12),
		ev.Phase,
		onOff(ev.Pedestrian),
	)
	if ev.Err != nil {
		msg += " err=" + ev.Err.Error()
	}
	r.logger.Println(msg)

	r.writeCSV(ev)
}

func (r *Recorder) writeCSV(ev traffic.Event) {
	if r.csvWriter == nil {
		return
	}
	rec := []string{
		ev.Time.Format(time.RFC3339Nano),
		r.runID,
		strconv.FormatUint(uint64(ev.Tick), 10),
		ev.Kind.String(),
		ev.Phase.String(),
		onOff(ev.Pedestrian),
	}
	r.csvWriter.Write(rec)
	r.csvWriter.Flush()
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
