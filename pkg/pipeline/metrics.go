// pkg/pipeline/metrics.go
package pipeline

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StageMetrics tracks one pipeline stage for one dataset.
type StageMetrics struct {
	Dataset   string
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	RowsIn    int
	RowsOut   int
}

// Duration returns how long the stage ran.
func (sm *StageMetrics) Duration() time.Duration {
	if sm.EndTime.IsZero() {
		return time.Since(sm.StartTime)
	}
	return sm.EndTime.Sub(sm.StartTime)
}

// RunMetrics tracks timings and row deltas across one pipeline run.
// Datasets may be cleaned concurrently, hence the mutex.
type RunMetrics struct {
	mu        sync.Mutex
	logger    *zap.Logger
	RunID     string
	StartTime time.Time
	EndTime   time.Time
	Stages    []*StageMetrics
}

// NewRunMetrics creates a metrics tracker for one run.
func NewRunMetrics(runID string, logger *zap.Logger) *RunMetrics {
	return &RunMetrics{
		logger:    logger,
		RunID:     runID,
		StartTime: time.Now(),
	}
}

// StartStage begins tracking a stage and returns it for completion.
func (rm *RunMetrics) StartStage(dataset, stage string, rowsIn int) *StageMetrics {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	sm := &StageMetrics{
		Dataset:   dataset,
		Stage:     stage,
		StartTime: time.Now(),
		RowsIn:    rowsIn,
	}
	rm.Stages = append(rm.Stages, sm)
	return sm
}

// EndStage completes a stage and logs its row delta.
func (rm *RunMetrics) EndStage(sm *StageMetrics, rowsOut int) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	sm.EndTime = time.Now()
	sm.RowsOut = rowsOut

	if rm.logger != nil {
		rm.logger.Info("Stage completed",
			zap.String("dataset", sm.Dataset),
			zap.String("stage", sm.Stage),
			zap.Int("rowsIn", sm.RowsIn),
			zap.Int("rowsOut", sm.RowsOut),
			zap.Duration("duration", sm.Duration()))
	}
}

// Complete marks the run as finished and logs a summary.
func (rm *RunMetrics) Complete() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.EndTime = time.Now()
	if rm.logger != nil {
		rm.logger.Info("Pipeline run completed",
			zap.String("runID", rm.RunID),
			zap.Duration("totalDuration", rm.EndTime.Sub(rm.StartTime)),
			zap.Int("stages", len(rm.Stages)))
	}
}

// Duration returns the total run duration.
func (rm *RunMetrics) Duration() time.Duration {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.duration()
}

// duration requires rm.mu to be held.
func (rm *RunMetrics) duration() time.Duration {
	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}

// Summary renders a human-readable run summary.
func (rm *RunMetrics) Summary() string {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	out := fmt.Sprintf("Run %s: %d stages in %.2fs\n", rm.RunID, len(rm.Stages), rm.duration().Seconds())
	for _, sm := range rm.Stages {
		out += fmt.Sprintf("- %s/%s: %d -> %d rows (%.3fs)\n",
			sm.Dataset, sm.Stage, sm.RowsIn, sm.RowsOut, sm.Duration().Seconds())
	}
	return out
}

// ToJSON serializes the run metrics.
func (rm *RunMetrics) ToJSON() ([]byte, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	type stage struct {
		Dataset  string `json:"dataset"`
		Stage    string `json:"stage"`
		RowsIn   int    `json:"rowsIn"`
		RowsOut  int    `json:"rowsOut"`
		Duration string `json:"duration"`
	}
	stages := make([]stage, 0, len(rm.Stages))
	for _, sm := range rm.Stages {
		stages = append(stages, stage{
			Dataset:  sm.Dataset,
			Stage:    sm.Stage,
			RowsIn:   sm.RowsIn,
			RowsOut:  sm.RowsOut,
			Duration: sm.Duration().String(),
		})
	}
	return json.Marshal(struct {
		RunID    string  `json:"runId"`
		Duration string  `json:"duration"`
		Stages   []stage `json:"stages"`
	}{
		RunID:    rm.RunID,
		Duration: rm.duration().String(),
		Stages:   stages,
	})
}
