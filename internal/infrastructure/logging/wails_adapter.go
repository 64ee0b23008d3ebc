package logging

// wailsSource tags every log line forwarded from the Wails framework so
// framework noise stays distinguishable from application lines.
const wailsSource = "wails"

// WailsLoggerAdapter exposes the structured logger through the plain-message
// interface the Wails runtime expects.
type WailsLoggerAdapter struct {
	logger Logger
}

// NewWailsLoggerAdapter wraps the given logger; nil falls back to the default.
func NewWailsLoggerAdapter(logger Logger) *WailsLoggerAdapter {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &WailsLoggerAdapter{logger: logger}
}

// Print logs general Wails output at INFO level
func (w *WailsLoggerAdapter) Print(message string) {
	w.logger.Info(message, "source", wailsSource)
}

// Trace logs Wails trace output at DEBUG level
func (w *WailsLoggerAdapter) Trace(message string) {
	w.logger.Debug(message, "source", wailsSource, "level", "trace")
}

// Debug logs a message at DEBUG level
func (w *WailsLoggerAdapter) Debug(message string) {
	w.logger.Debug(message, "source", wailsSource)
}

// Info logs a message at INFO level
func (w *WailsLoggerAdapter) Info(message string) {
	w.logger.Info(message, "source", wailsSource)
}

// Warning logs a message at WARN level
func (w *WailsLoggerAdapter) Warning(message string) {
	w.logger.Warn(message, "source", wailsSource)
}

// Error logs a message at ERROR level
func (w *WailsLoggerAdapter) Error(message string) {
	w.logger.Error(message, "source", wailsSource)
}

// Fatal logs at ERROR level; the adapter never exits the process, shutdown
// stays with the application.
func (w *WailsLoggerAdapter) Fatal(message string) {
	w.logger.Error(message, "source", wailsSource, "level", "fatal")
}
