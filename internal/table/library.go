package table

import (
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Library is a named set of two-dimensional tables that can be reloaded from
// disk. A reload builds a complete new set and publishes it with one atomic
// swap.
type Library struct {
	tables atomic.Pointer[map[string]Evaluator]
	log    logrus.FieldLogger
}

// NewLibrary returns an empty library.
func NewLibrary(log logrus.FieldLogger) *Library {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &Library{log: log}
	empty := map[string]Evaluator{}
	l.tables.Store(&empty)
	return l
}

// Load reads every .json, .yaml and .yml file below dir. Table names are the
// slash-separated path relative to dir without extension, e.g. "water/hp_to_t".
// Files that fail to parse are logged and skipped; the previous set stays
// published if the walk itself fails.
func (l *Library) Load(dir string) error {
	l.log.WithField("dir", dir).Info("reloading tabulated functions")

	next := map[string]Evaluator{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

		def, err := ReadDefinition(path)
		if err != nil {
			l.log.WithError(err).WithField("table", name).Error("failed to load table")
			return nil
		}
		t, err := def.Build()
		if err != nil {
			l.log.WithError(err).WithField("table", name).Error("failed to build table")
			return nil
		}
		next[name] = t
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading tables from %s: %w", dir, err)
	}

	l.tables.Store(&next)
	l.log.WithField("count", len(next)).Debug("tables published")
	return nil
}

// Put publishes t under name, copying the current set.
func (l *Library) Put(name string, t Evaluator) {
	for {
		old := l.tables.Load()
		next := make(map[string]Evaluator, len(*old)+1)
		for k, v := range *old {
			next[k] = v
		}
		next[name] = t
		if l.tables.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Get returns the table published under name.
func (l *Library) Get(name string) (Evaluator, bool) {
	t, ok := (*l.tables.Load())[name]
	return t, ok
}

// Evaluate looks up name and evaluates it at (x, y).
func (l *Library) Evaluate(name string, x, y float64) (float64, error) {
	t, ok := l.Get(name)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return t.Evaluate(x, y)
}

// Names lists the published table names in sorted order.
func (l *Library) Names() []string {
	return sortedKeys(*l.tables.Load())
}
