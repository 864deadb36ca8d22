package process

import (
	"io"
	"os"
	"sync"
	"testing"

	"github.com/san-kum/realfluid/internal/eos"
	"github.com/san-kum/realfluid/internal/solver"
	"github.com/sirupsen/logrus"
)

var quiet = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func TestMain(m *testing.M) {
	solver.SetLogger(quiet)
	os.Exit(m.Run())
}

var (
	engineOnce sync.Once
	engine     *Engine
	engineErr  error
)

// fataler is satisfied by testing.TB and GinkgoT().
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// waterEngine shares one Peng-Robinson water engine across the package tests.
func waterEngine(tb fataler) *Engine {
	tb.Helper()
	engineOnce.Do(func() {
		var c *eos.Cubic
		c, engineErr = eos.NewPengRobinson(eos.Water(), eos.WithLogger(quiet))
		if engineErr == nil {
			engine = NewEngine(c, WithEngineLogger(quiet))
		}
	})
	if engineErr != nil {
		tb.Fatalf("failed to build water engine: %v", engineErr)
	}
	return engine
}
