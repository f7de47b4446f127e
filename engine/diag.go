package engine

import (
	"io"

	"github.com/sirupsen/logrus"
)

// diag receives solver working output. It defaults to a discarded,
// panic-level logger so solver hot paths pay only a level check.
var diag = newSilentLogger()

func newSilentLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetDiagnostics installs a logger receiving solver deduction traces
// at debug level. Passing nil silences diagnostics again.
func SetDiagnostics(l logrus.FieldLogger) {
	if l == nil {
		l = newSilentLogger()
	}
	diag = l
}

// Diag returns the current diagnostics logger. Solvers tag their
// output with a "solver" field naming the family.
func Diag() logrus.FieldLogger {
	return diag
}
