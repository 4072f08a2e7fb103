package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lobis/restG4/internal/engine"
)

var _ engine.RunIDGenerator = (*FixedRunIDGenerator)(nil)
var _ engine.SeqSource = (*DeterministicClock)(nil)

func TestFixedRunIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedRunIDGenerator("test-run-123")

	// Multiple calls return same id
	assert.Equal(t, "test-run-123", gen.Generate())
	assert.Equal(t, "test-run-123", gen.Generate())
}

func TestFixedRunIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedRunIDGenerator("")

	assert.Equal(t, "test-run-default", gen.Generate())
}

func TestFixedRunIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewFixedRunIDGenerator("thread-safe-id")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "thread-safe-id", gen.Generate())
			}
		}()
	}
	wg.Wait()
}

func TestDeterministicClock_StampsRecorder(t *testing.T) {
	clock := NewDeterministicClock()
	rec := engine.NewRecorder(engine.WithClock(clock))

	assert.NoError(t, rec.AddTransportation())
	assert.NoError(t, rec.AddTransportation())
	assert.Equal(t, int64(2), clock.Current())

	clock.Reset()
	rec2 := engine.NewRecorder(engine.WithClock(clock))
	assert.NoError(t, rec2.AddTransportation())
	assert.Equal(t, rec.Calls()[0], rec2.Calls()[0], "reset clock reproduces seq")
}
