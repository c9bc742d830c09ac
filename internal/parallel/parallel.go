// Package parallel runs independent jobs on a bounded number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how many goroutines a call may use.
type Config struct {
	Enabled    bool // Run jobs concurrently.
	NumWorkers int  // Upper bound on concurrent jobs.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{Enabled: n > 1, NumWorkers: n}
}

// Sequential runs every job on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// ForEach calls f(i) for i in [0, n) and returns the error of the lowest
// failing index. Every job runs even when an earlier one fails.
func ForEach(n int, f func(i int) error, cfg Config) error {
	errs := make([]error, n)
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			errs[i] = f(i)
		}
		return firstError(errs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(cfg.NumWorkers, n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = f(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return firstError(errs)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
