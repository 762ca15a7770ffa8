package ipc

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dedzsinator/go-matrix/internal/interp"
)

// Simulation synthesis parameters: 60 FPS over a ten second run with
// standard gravity, matching what the visualizer expects.
const (
	timeStep  = 1.0 / 60.0
	totalTime = 10.0
	gravityY  = -9.81
)

// FileSink is the reference directive sink. It converts a directive payload
// into a simulation document and writes it to the exchange file for the
// visualizer to pick up.
type FileSink struct {
	path string
	now  func() string
}

// NewFileSink creates a sink writing to the platform exchange file.
func NewFileSink() *FileSink {
	return &FileSink{path: DataFilePath()}
}

// NewFileSinkAt creates a sink writing to a custom path. Used by tests and
// embedders that relocate the exchange file.
func NewFileSinkAt(path string) *FileSink {
	return &FileSink{path: path}
}

// OnDirective implements interp.DirectiveSink. Both directive kinds share
// the document format; the payload only influences how many objects are
// synthesized.
func (s *FileSink) OnDirective(kind string, value interp.Value) error {
	data := s.buildDocument(kind, value)
	return WriteSimulationData(s.path, data)
}

// buildDocument synthesizes object trajectories for the payload: projectile
// motion on the vertical axis clamped at the ground plane, with sinusoidal
// horizontal drift so that plots stay visually distinct per object.
func (s *FileSink) buildDocument(kind string, value interp.Value) *SimulationData {
	steps := int(totalTime/timeStep) + 1
	timePoints := make([]float64, steps)
	for i := range timePoints {
		timePoints[i] = float64(i) * timeStep
	}

	objects := make([]SimulationObject, objectCount(value))
	for idx := range objects {
		initialHeight := float64(idx+1) * 2.0
		positions := make([][3]float64, steps)
		velocities := make([][3]float64, steps)
		for step, t := range timePoints {
			y := initialHeight + 0.5*gravityY*t*t
			vy := gravityY * t
			if y < 0 {
				y, vy = 0, 0
			}
			positions[step] = [3]float64{
				math.Sin(t*0.5) * 2.0,
				y,
				math.Cos(t*0.3) * 1.5,
			}
			velocities[step] = [3]float64{
				math.Cos(t*0.5) * 1.0,
				vy,
				-math.Sin(t*0.3) * 0.45,
			}
		}
		objects[idx] = SimulationObject{
			ID:         uint32(idx),
			Name:       objectName(kind, idx),
			Positions:  positions,
			Velocities: velocities,
			Mass:       1.0,
			Shape:      ObjectShape{Sphere: &SphereShape{Radius: 0.5}},
		}
	}

	return &SimulationData{
		TimePoints: timePoints,
		Objects:    objects,
		Metadata: SimulationMetadata{
			TotalTime:    totalTime,
			TimeStep:     timeStep,
			Gravity:      [3]float64{0, gravityY, 0},
			SimulationID: "matrix_sim_" + uuid.NewString(),
			CreatedAt:    s.createdAt(),
		},
	}
}

func (s *FileSink) createdAt() string {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// objectCount derives how many objects the payload describes: one per
// element for array payloads, otherwise a single object.
func objectCount(value interp.Value) int {
	if arr, ok := value.(*interp.ArrayValue); ok && len(arr.Elements) > 0 {
		return len(arr.Elements)
	}
	return 1
}

func objectName(kind string, idx int) string {
	return fmt.Sprintf("%s_object_%d", kind, idx)
}
