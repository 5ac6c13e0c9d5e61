package util

// Progress collects the results of a batch of per-file jobs run by a pool of
// workers. Failures are logged as warnings as they arrive, and with -verbose
// a running count of moved files is kept.
type Progress struct {
	results chan result
	done    chan int
}

type result struct {
	name string
	err  error
}

func NewProgress(total int) Progress {
	p := Progress{make(chan result), make(chan int)}
	go func() {
		completed, failed := 0, 0
		for r := range p.results {
			if r.err == nil {
				completed++
			} else {
				failed++
				Warning(r.err, "Could not move '%s'", r.name)
			}

			ratio := 100.0 * (float64(completed) / float64(total))
			Verbosef("\r%d of %d files moved (%0.2f%% done, %d errors)",
				completed, total, ratio, failed)
		}
		p.done <- failed
	}()
	return p
}

// JobDone records the result of the job for the named file. It is safe to
// call from many goroutines.
func (p Progress) JobDone(name string, err error) {
	p.results <- result{name, err}
}

// Close waits until every result has been logged and returns the number of
// jobs that failed. JobDone must not be called after Close.
func (p Progress) Close() int {
	close(p.results)
	return <-p.done
}
