package engine

// Observer receives diagnostic traces from each pipeline stage.
// keyvals alternate between string keys and arbitrary values.
type Observer interface {
	Trace(msg string, keyvals ...interface{})
}

// NopObserver discards every trace.
type NopObserver struct{}

func (NopObserver) Trace(string, ...interface{}) {}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(msg string, keyvals ...interface{})

func (f ObserverFunc) Trace(msg string, keyvals ...interface{}) {
	f(msg, keyvals...)
}
