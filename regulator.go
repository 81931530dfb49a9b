package qket

/*
Regulator watches pool metrics and decides when the caller should hold back.
The batch runner consults one before every shot it schedules.
*/
type Regulator interface {
	// Observe takes a fresh reading of the pool.
	Observe(metrics *Metrics)

	// Limit reports whether new work should wait.
	Limit() bool

	// Renormalize eases the limit after the caller has drained some work.
	Renormalize()
}
