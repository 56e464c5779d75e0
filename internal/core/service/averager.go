package service

// ExcessAverager accumulates excess power samples between decision epochs.
type ExcessAverager struct {
	accumulated int64
	rounds      int64
}

// Observe adds a sample and returns the running mean, truncated toward zero.
func (a *ExcessAverager) Observe(excess int32) int64 {
	a.rounds++
	a.accumulated += int64(excess)
	return a.accumulated / a.rounds
}

func (a *ExcessAverager) Reset() {
	a.accumulated = 0
	a.rounds = 0
}

func (a *ExcessAverager) Rounds() int64 {
	return a.rounds
}

func (a *ExcessAverager) Accumulated() int64 {
	return a.accumulated
}
