// Package ipc implements the JSON bridge between directive evaluation and
// the external visualizer. The file format is shared with the bundled
// physics engine GUI: the writer side serializes a simulation document, the
// reader side consumes and removes it.
package ipc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataFileName is the well-known name of the simulation exchange file.
const DataFileName = "matrix_lang_simulation_data.json"

// SimulationData is the top-level IPC document.
type SimulationData struct {
	TimePoints []float64          `json:"time_points"`
	Objects    []SimulationObject `json:"objects"`
	Metadata   SimulationMetadata `json:"metadata"`
}

// SimulationObject carries one object's trajectory.
type SimulationObject struct {
	ID         uint32       `json:"id"`
	Name       string       `json:"name"`
	Positions  [][3]float64 `json:"positions"`
	Velocities [][3]float64 `json:"velocities"`
	Mass       float64      `json:"mass"`
	Shape      ObjectShape  `json:"shape"`
}

// ObjectShape is the externally-tagged shape union: exactly one of the
// fields is set.
type ObjectShape struct {
	Sphere *SphereShape `json:"Sphere,omitempty"`
	Box    *BoxShape    `json:"Box,omitempty"`
	Plane  *PlaneShape  `json:"Plane,omitempty"`
}

type SphereShape struct {
	Radius float64 `json:"radius"`
}

type BoxShape struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type PlaneShape struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SimulationMetadata describes the run that produced the document.
type SimulationMetadata struct {
	TotalTime    float64    `json:"total_time"`
	TimeStep     float64    `json:"time_step"`
	Gravity      [3]float64 `json:"gravity"`
	SimulationID string     `json:"simulation_id"`
	CreatedAt    string     `json:"created_at"`
}

// DataFilePath returns the platform's exchange file location.
func DataFilePath() string {
	if runtime.GOOS == "windows" {
		return "C:/tmp/" + DataFileName
	}
	return "/tmp/" + DataFileName
}

// WriteSimulationData serializes the document to path, creating parent
// directories as needed.
func WriteSimulationData(path string, data *SimulationData) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode simulation data: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write simulation data: %w", err)
	}
	return nil
}

// ReadSimulationData parses the document at path and removes the file after
// a successful parse, completing the exchange.
func ReadSimulationData(path string) (*SimulationData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read simulation data: %w", err)
	}
	var data SimulationData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decode simulation data: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("remove simulation data: %w", err)
	}
	return &data, nil
}
