package timer

import (
	"runtime"
	"time"
)

// spinLimit is the tail of a sleep that is spun instead of slept, since the
// OS scheduler overshoots short sleeps (badly on Windows).
var spinLimit = func() time.Duration {
	if runtime.GOOS == "windows" {
		return 15 * time.Millisecond
	}
	return 3 * time.Millisecond
}()

// Sleep pauses the goroutine for d: an OS sleep for most of it, then a
// yield loop until the deadline.
func Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= spinLimit {
			break
		}
		time.Sleep(remaining - spinLimit)
	}
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
