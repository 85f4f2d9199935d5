package display

import (
	"image"
	"io"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interactive-vision/internal/core"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestDelayMillis(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Microsecond, 1},
		{time.Millisecond, 1},
		{30 * time.Millisecond, 30},
		{2 * time.Second, 2000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, delayMillis(tt.timeout), tt.timeout.String())
	}
}

func TestKeyFromCode(t *testing.T) {
	key, ok := keyFromCode(-1)
	assert.False(t, ok)
	assert.Equal(t, core.Key(0), key)

	key, ok = keyFromCode('q')
	assert.True(t, ok)
	assert.Equal(t, core.Key('q'), key)

	// modifier bits above the low byte are dropped
	key, ok = keyFromCode(0x100000 | 's')
	assert.True(t, ok)
	assert.Equal(t, core.Key('s'), key)
}

func TestWindow_WaitKeyBeforeShow(t *testing.T) {
	w := NewWindow(image.Point{}, quietLogger())
	_, ok := w.WaitKey(time.Millisecond)
	assert.False(t, ok)
	assert.NoError(t, w.Close())
}

func TestFyne_TypedRunesReachWaitKey(t *testing.T) {
	f := NewFyne(test.NewApp(), "Live Filters", image.Point{}, 'q', quietLogger())

	f.window.Canvas().OnTypedRune()('s')
	f.window.Canvas().OnTypedRune()('c')

	key, ok := f.WaitKey(time.Second)
	require.True(t, ok)
	assert.Equal(t, core.Key('s'), key)

	key, ok = f.WaitKey(0)
	require.True(t, ok)
	assert.Equal(t, core.Key('c'), key)
}

func TestFyne_WaitKeyTimesOut(t *testing.T) {
	f := NewFyne(test.NewApp(), "Face Tracking", image.Point{}, 'q', quietLogger())

	start := time.Now()
	_, ok := f.WaitKey(5 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestFyne_ClosingWindowSendsQuit(t *testing.T) {
	f := NewFyne(test.NewApp(), "Face Tracking", image.Point{}, 'q', quietLogger())

	f.window.Close()

	key, ok := f.WaitKey(time.Second)
	require.True(t, ok)
	assert.Equal(t, core.Key('q'), key)
	assert.True(t, f.closed.Load())
}

func TestFyne_KeyBufferDropsOverflow(t *testing.T) {
	f := NewFyne(test.NewApp(), "Live Filters", image.Point{}, 'q', quietLogger())

	for i := 0; i < keyBuffer+4; i++ {
		f.push('r')
	}
	assert.Len(t, f.keys, keyBuffer)
}
