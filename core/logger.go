package core

// Logger reports application events. The console implementation prints to
// stdout; deployed envs ship errors to Rollbar with the acting user attached.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
