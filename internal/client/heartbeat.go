package client

import "time"

// DefaultPingInterval is the target gap between keepalive pings.
const DefaultPingInterval = 500 * time.Millisecond

// NextPingDelay returns how long to wait before the next ping so the gap
// between sends stays close to target regardless of how long the previous
// frame took to process. The delay is clamped at zero: if processing alone
// exceeded the target, the next ping fires immediately.
func NextPingDelay(target, elapsed time.Duration) time.Duration {
	if elapsed >= target {
		return 0
	}
	return target - elapsed
}
