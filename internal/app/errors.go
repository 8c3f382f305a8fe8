package service

import "fmt"

// Procedure names used in logs, metrics and errors.
const (
	ProcedureCorrelationHeatmap = "correlation_heatmap"
	ProcedureSegmentRadar       = "segment_radar"
)

// Stages of a procedure.
const (
	StageLoad    = "load"
	StageCompute = "compute"
	StageRender  = "render"
)

// StageError reports which procedure and stage failed. errors.Is and
// errors.As see through it to the underlying cause.
type StageError struct {
	Procedure string
	Stage     string
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s stage failed: %v", e.Procedure, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
