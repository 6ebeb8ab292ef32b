// Package logging provides the shared logrus field-logger setup used by
// every long-lived ground and simulation component.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a FieldLogger pre-scoped to component: one logger per
// long-lived object, never a package global.
func New(component string) logrus.FieldLogger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return base.WithField("component", component)
}

// Discard returns a logger that drops everything, for tests that don't
// want log noise but still need a FieldLogger to inject.
func Discard() logrus.FieldLogger {
	base := logrus.New()
	base.SetOutput(discardWriter{})
	return base.WithField("component", "test")
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
