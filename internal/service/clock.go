package service

import "time"

// Clock abstracts wall-clock time so past-date and same-day slot filtering
// can be tested without depending on the real clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewSystemClock() Clock {
	return systemClock{}
}
