package grader

import "github.com/perfgo/lingsgrade/model"

// Observer receives progress events from a grading run. Implementations
// render them; the grader never prints on its own.
type Observer interface {
	// Discovered is called once with the number of exercises found.
	Discovered(count int)
	// Started is called before an exercise is compiled.
	Started(name string)
	// Output carries captured process output that should be shown.
	Output(name, stdout, stderr string)
	// CompileFailed is called when the compile step did not succeed.
	CompileFailed(name string)
	// Finished is called with the outcome of a graded exercise.
	Finished(o model.Outcome)
	// Progress reports how many of total exercises are done.
	Progress(done, total int)
}

// NopObserver ignores every event.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) Discovered(int)                {}
func (NopObserver) Started(string)                {}
func (NopObserver) Output(string, string, string) {}
func (NopObserver) CompileFailed(string)          {}
func (NopObserver) Finished(model.Outcome)        {}
func (NopObserver) Progress(int, int)             {}

// eventLog buffers the events of one exercise so they can be replayed as a
// single block when exercises are graded concurrently.
type eventLog struct {
	events []func(Observer)
}

var _ Observer = &eventLog{}

func (l *eventLog) Discovered(count int) {
	l.events = append(l.events, func(o Observer) { o.Discovered(count) })
}

func (l *eventLog) Started(name string) {
	l.events = append(l.events, func(o Observer) { o.Started(name) })
}

func (l *eventLog) Output(name, stdout, stderr string) {
	l.events = append(l.events, func(o Observer) { o.Output(name, stdout, stderr) })
}

func (l *eventLog) CompileFailed(name string) {
	l.events = append(l.events, func(o Observer) { o.CompileFailed(name) })
}

func (l *eventLog) Finished(outcome model.Outcome) {
	l.events = append(l.events, func(o Observer) { o.Finished(outcome) })
}

func (l *eventLog) Progress(done, total int) {
	l.events = append(l.events, func(o Observer) { o.Progress(done, total) })
}

func (l *eventLog) replay(o Observer) {
	for _, e := range l.events {
		e(o)
	}
	l.events = nil
}
