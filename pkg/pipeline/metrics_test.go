// pkg/pipeline/metrics_test.go
package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunMetricsTracksStages(t *testing.T) {
	rm := NewRunMetrics("run-1", zap.NewNop())

	sm := rm.StartStage("workforce", "dedupe", 10)
	rm.EndStage(sm, 8)
	sm = rm.StartStage("capacity", "cast", 4)
	rm.EndStage(sm, 4)
	rm.Complete()

	require.Len(t, rm.Stages, 2)
	assert.Equal(t, "workforce", rm.Stages[0].Dataset)
	assert.Equal(t, 10, rm.Stages[0].RowsIn)
	assert.Equal(t, 8, rm.Stages[0].RowsOut)
	assert.False(t, rm.Stages[0].EndTime.IsZero())
	assert.GreaterOrEqual(t, rm.Duration(), rm.Stages[0].Duration())
}

func TestRunMetricsSummary(t *testing.T) {
	rm := NewRunMetrics("run-2", zap.NewNop())
	sm := rm.StartStage("workforce", "unify", 7)
	rm.EndStage(sm, 7)
	rm.Complete()

	summary := rm.Summary()
	assert.Contains(t, summary, "Run run-2: 1 stages")
	assert.Contains(t, summary, "- workforce/unify: 7 -> 7 rows")
}

func TestRunMetricsToJSON(t *testing.T) {
	rm := NewRunMetrics("run-3", zap.NewNop())
	sm := rm.StartStage("capacity", "outliers", 4)
	rm.EndStage(sm, 4)
	rm.Complete()

	raw, err := rm.ToJSON()
	require.NoError(t, err)

	var decoded struct {
		RunID  string `json:"runId"`
		Stages []struct {
			Dataset string `json:"dataset"`
			Stage   string `json:"stage"`
			RowsIn  int    `json:"rowsIn"`
			RowsOut int    `json:"rowsOut"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "run-3", decoded.RunID)
	require.Len(t, decoded.Stages, 1)
	assert.Equal(t, "outliers", decoded.Stages[0].Stage)
}
