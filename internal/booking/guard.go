package booking

// requestGuard issues one ticket per request of an operation. Only the
// newest ticket may apply its response, so a slow older response that
// completes after a newer one is dropped even when both target the same key.
// Callers hold the session lock.
type requestGuard struct {
	latest uint64
}

func (g *requestGuard) issue() uint64 {
	g.latest++
	return g.latest
}

func (g *requestGuard) isCurrent(ticket uint64) bool {
	return ticket == g.latest
}

// invalidate makes every outstanding ticket stale.
func (g *requestGuard) invalidate() {
	g.latest++
}
