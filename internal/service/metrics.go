package service

// MetricsRecorder receives business counters from the services.
type MetricsRecorder interface {
	UserCreated()
	ExerciseLogged(durationMinutes int)
}

type noopMetrics struct{}

func (noopMetrics) UserCreated()       {}
func (noopMetrics) ExerciseLogged(int) {}
