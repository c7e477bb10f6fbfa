package probe

import "fmt"

// Result is the outcome of a single probe: either a count of pending
// upgrades or the reason the probe failed. Exactly one of the two is set.
type Result struct {
	Count int
	Err   error
}

// Count returns a successful result carrying n pending upgrades.
func Count(n int) Result {
	if n < 0 {
		n = 0
	}
	return Result{Count: n}
}

// Failed returns an error result.
func Failed(err error) Result {
	if err == nil {
		err = fmt.Errorf("probe failed")
	}
	return Result{Err: err}
}

// OK reports whether the probe produced a count.
func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("error(%v)", r.Err)
	}
	return fmt.Sprintf("count(%d)", r.Count)
}
