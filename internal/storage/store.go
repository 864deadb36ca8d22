package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/realfluid/internal/process"
)

var csvHeader = []string{"step", "temperature", "pressure", "specific_enthalpy", "vapor_quality"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Fluid     string             `json:"fluid"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Cycle     process.Cycle      `json:"cycle"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is a saved cycle: its metadata and the recorded steps.
type Run struct {
	Meta  RunMetadata
	Steps []process.Step
}

// Metrics summarises a cycle run per unit mass.
func Metrics(steps []process.Step) map[string]float64 {
	m := map[string]float64{"net_work": process.NetWork(steps)}
	if len(steps) >= 3 {
		heat := steps[2].State.H - steps[1].State.H
		m["heat_in"] = heat
		if heat != 0 {
			m["efficiency"] = m["net_work"] / heat
		}
	}
	return m
}

func (s *Store) Save(fluid, model string, cycle process.Cycle, steps []process.Step) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", fluid, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Fluid:     fluid,
		Model:     model,
		Timestamp: now,
		Cycle:     cycle,
		Metrics:   Metrics(steps),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, step := range steps {
		st := step.State
		row := []string{step.Name}
		for _, v := range []float64{st.T, st.P, st.H, st.X} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSteps(runID string) ([]process.Step, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []process.Step{}, nil
	}

	steps := make([]process.Step, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [4]float64
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("states.csv line %d: %w", i+2, err)
			}
		}
		steps = append(steps, process.Step{
			Name:  record[0],
			State: process.State{T: vals[0], P: vals[1], H: vals[2], X: vals[3]},
		})
	}

	return steps, nil
}

// LoadRun reads metadata and steps of one run.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	steps, err := s.LoadSteps(runID)
	if err != nil {
		return nil, err
	}
	return &Run{Meta: *meta, Steps: steps}, nil
}
