package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachRunsEveryJob(t *testing.T) {
	for name, cfg := range map[string]Config{
		"default":    DefaultConfig(),
		"sequential": Sequential(),
		"four":       {Enabled: true, NumWorkers: 4},
	} {
		t.Run(name, func(t *testing.T) {
			var counter int64
			seen := make([]bool, 100)
			err := ForEach(len(seen), func(i int) error {
				atomic.AddInt64(&counter, 1)
				seen[i] = true
				return nil
			}, cfg)
			require.NoError(t, err)
			assert.Equal(t, int64(100), counter)
			for i, ok := range seen {
				assert.True(t, ok, "job %d", i)
			}
		})
	}
}

func TestForEachReturnsLowestError(t *testing.T) {
	var counter int64
	err := ForEach(20, func(i int) error {
		atomic.AddInt64(&counter, 1)
		if i%7 == 3 {
			return errors.Errorf("job %d", i)
		}
		return nil
	}, Config{Enabled: true, NumWorkers: 3})
	require.Error(t, err)
	assert.Equal(t, "job 3", err.Error())
	assert.Equal(t, int64(20), counter)
}

func TestForEachEmpty(t *testing.T) {
	assert.NoError(t, ForEach(0, func(int) error { panic("unreachable") }, DefaultConfig()))
}
