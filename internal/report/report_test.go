package report

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reactd/pkg/types"
)

type fixedStatus types.StatusResponse

func (f fixedStatus) Status() types.StatusResponse { return types.StatusResponse(f) }

func TestReporter_RunsOnStart(t *testing.T) {
	var buf syncBuffer
	got := make(chan types.StatusResponse, 1)
	src := fixedStatus{State: "running", EventsTotal: 7}

	r, err := New(src, time.Hour,
		WithLogger(zerolog.New(&buf)),
		WithSink(func(st types.StatusResponse) { got <- st }),
		WithStartImmediately(),
	)
	require.NoError(t, err)
	r.Start()
	defer func() { assert.NoError(t, r.Shutdown()) }()

	select {
	case st := <-got:
		assert.Equal(t, uint64(7), st.EventsTotal)
	case <-time.After(5 * time.Second):
		t.Fatal("report did not run")
	}
	assert.Equal(t, uint64(1), r.Runs())
	assert.Contains(t, buf.String(), `"events_total":7`)
	assert.Contains(t, buf.String(), `"message":"status"`)
}

func TestReporter_Validation(t *testing.T) {
	_, err := New(nil, time.Second)
	assert.Error(t, err)
	_, err = New(fixedStatus{}, 0)
	assert.Error(t, err)
}

func TestGocronLogger_WritesFields(t *testing.T) {
	var buf syncBuffer
	l := gocronLogger{log: zerolog.New(&buf)}
	l.Warn("job skipped", "name", jobName)
	out := buf.String()
	assert.True(t, strings.Contains(out, `"name":"status-report"`), out)
	assert.Contains(t, out, `"level":"warn"`)
}

// syncBuffer guards a bytes.Buffer written from the scheduler goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
