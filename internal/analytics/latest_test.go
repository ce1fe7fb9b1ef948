package analytics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatest_Empty(t *testing.T) {
	var latest Latest
	report, seq := latest.Get()
	assert.Nil(t, report)
	assert.Zero(t, seq)
}

func TestLatest_StaleRunIsDropped(t *testing.T) {
	var latest Latest
	older := latest.Begin()
	newer := latest.Begin()

	fresh := &Report{GeneratedAt: testNow}
	stale := &Report{GeneratedAt: testNow.AddDate(0, 0, -1)}

	assert.True(t, latest.Publish(newer, fresh))
	assert.False(t, latest.Publish(older, stale))

	report, seq := latest.Get()
	assert.Same(t, fresh, report)
	assert.Equal(t, newer, seq)
}

func TestLatest_ConcurrentPublishKeepsNewest(t *testing.T) {
	var latest Latest
	seqs := make([]uint64, 50)
	for i := range seqs {
		seqs[i] = latest.Begin()
	}

	var wg sync.WaitGroup
	for _, seq := range seqs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			latest.Publish(seq, &Report{})
		}()
	}
	wg.Wait()

	_, seq := latest.Get()
	assert.Equal(t, seqs[len(seqs)-1], seq)
}
