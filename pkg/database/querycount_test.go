package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithQueryCounter_RoundTrip(t *testing.T) {
	ctx, qc := WithQueryCounter(context.Background())

	assert.Equal(t, int64(0), qc.Count())
	assert.Same(t, qc, CounterFromContext(ctx))

	qc.inc()
	qc.inc()
	assert.Equal(t, int64(2), qc.Count())
}

func TestCounterFromContext_Absent(t *testing.T) {
	assert.Nil(t, CounterFromContext(context.Background()))
	assert.Nil(t, CounterFromContext(nil))
}

func TestQueryCounter_IndependentPerContext(t *testing.T) {
	_, first := WithQueryCounter(context.Background())
	_, second := WithQueryCounter(context.Background())

	first.inc()

	assert.Equal(t, int64(1), first.Count())
	assert.Equal(t, int64(0), second.Count())
}

func TestQueryCounter_Concurrent(t *testing.T) {
	_, qc := WithQueryCounter(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qc.inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), qc.Count())
}
