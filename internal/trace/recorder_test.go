package trace

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficctl/internal/traffic"
)

func feed(evs ...traffic.Event) <-chan traffic.Event {
	ch := make(chan traffic.Event, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestRecorder_LogLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(log.New(&buf, "", 0), false)

	require.NoError(t, r.Consume(feed(
		traffic.Event{Kind: traffic.EventPhase, Tick: 4000, Phase: traffic.PhaseGreen},
		traffic.Event{Kind: traffic.EventPedestrian, Tick: 4500, Phase: traffic.PhaseGreen, Pedestrian: true},
		traffic.Event{Kind: traffic.EventOutputFault, Tick: 4501, Err: errors.New("nack")},
	)))

	out := buf.String()
	assert.Contains(t, out, "tick 4000")
	assert.Contains(t, out, "phase=GREEN")
	assert.NotContains(t, out, "tick 4500", "pedestrian toggles are quiet unless verbose")
	assert.Contains(t, out, "err=nack")

	counts := r.Counts()
	assert.Equal(t, 1, counts[traffic.EventPedestrian])
	assert.Equal(t, 1, counts[traffic.EventPhase])
}

func TestRecorder_VerboseLogsPedestrian(t *testing.T) {
	var buf bytes.Buffer
	r := New(log.New(&buf, "", 0), true)
	r.Handle(traffic.Event{Kind: traffic.EventPedestrian, Tick: 6500, Phase: traffic.PhaseYellow, Pedestrian: true})
	assert.Contains(t, buf.String(), "pedestrian=ON")
}

func TestRecorder_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	r := New(nil, false)
	_, err := uuid.Parse(r.RunID())
	require.NoError(t, err)
	require.NoError(t, r.EnableCSV(path))

	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	require.NoError(t, r.Consume(feed(
		traffic.Event{Time: now, Kind: traffic.EventRequestLatched, Tick: 4535, Phase: traffic.PhaseGreen, Pedestrian: true},
		traffic.Event{Time: now, Kind: traffic.EventPedestrian, Tick: 6000, Phase: traffic.PhaseYellow},
	)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"timestamp", "run_id", "tick", "event", "phase", "pedestrian"}, rows[0])
	assert.Equal(t, []string{now.Format(time.RFC3339Nano), r.RunID(), "4535", "Latched", "GREEN", "ON"}, rows[1])
	assert.Equal(t, "OFF", rows[2][5])
}

func TestRecorder_EnableCSVBadPath(t *testing.T) {
	r := New(log.New(io.Discard, "", 0), false)
	err := r.EnableCSV(filepath.Join(t.TempDir(), "missing", "events.csv"))
	assert.Error(t, err)
}
