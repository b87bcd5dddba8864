package logging

// NullLogger drops every message. Tests and library callers that have no
// log destination use it.
type NullLogger struct{}

// NewNullLogger returns a logger that writes nothing.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (*NullLogger) Verbose(string, ...interface{}) {}
func (*NullLogger) Info(string, ...interface{})    {}
func (*NullLogger) Error(string, ...interface{})   {}
