package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	RunMetadata
	Steps []StepExport `json:"steps"`
}

type StepExport struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	Enthalpy    float64 `json:"specific_enthalpy"`
	Quality     float64 `json:"vapor_quality"`
}

func newExportData(run *Run) ExportData {
	data := ExportData{
		RunMetadata: run.Meta,
		Steps:       make([]StepExport, len(run.Steps)),
	}
	for i, s := range run.Steps {
		data.Steps[i] = StepExport{
			Name:        s.Name,
			Temperature: s.State.T,
			Pressure:    s.State.P,
			Enthalpy:    s.State.H,
			Quality:     s.State.X,
		}
	}
	return data
}

// WriteJSON encodes run as indented JSON.
func WriteJSON(w io.Writer, run *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(run))
}

func ExportJSON(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, run)
}

func ExportJSONStdout(run *Run) error {
	return WriteJSON(os.Stdout, run)
}
