package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotator_CyclesAndWraps(t *testing.T) {
	messages := []string{"one", "two", "three"}
	r := NewRotator(messages, time.Hour)

	assert.Equal(t, "one", r.Current())

	// Walk two full cycles: every message appears in order, none skipped,
	// and the sequence wraps back to the first after the last.
	var seen []string
	for i := 0; i < 2*len(messages); i++ {
		seen = append(seen, r.Advance())
	}
	assert.Equal(t, []string{"two", "three", "one", "two", "three", "one"}, seen)
}

func TestRotator_DefaultsToProductionMessages(t *testing.T) {
	r := NewRotator(nil, 0)

	require.Equal(t, LoadingMessages[0], r.Current())
	assert.Equal(t, DefaultRotateInterval, r.interval)
	assert.Len(t, r.messages, 4)
}

func TestRotator_TickerAdvances(t *testing.T) {
	r := NewRotator([]string{"a", "b"}, 5*time.Millisecond)
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return r.Current() == "b"
	}, time.Second, time.Millisecond)
}

func TestRotator_StopIsIdempotent(t *testing.T) {
	r := NewRotator([]string{"a", "b"}, time.Millisecond)
	r.Start()
	r.Stop()
	r.Stop() // second Stop must not panic or block

	// No rotation after Stop.
	current := r.Current()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, current, r.Current())
}

func TestRotator_StopWithoutStart(t *testing.T) {
	r := NewRotator(nil, 0)
	r.Stop()
}
