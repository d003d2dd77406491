package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppMetrics_RecordRun(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	m.RecordRun(RunObservation{
		Source:     "example",
		Outcome:    OutcomeCompleted,
		Duration:   120 * time.Millisecond,
		Records:    6,
		ByStatus:   map[string]int{"Pass": 3, "Invalid SMILES": 2, "Fail (Lipinski Violation)": 1},
		Failures:   map[string]int{"CAND_004": 1},
		Drawable:   4,
		Depictions: 3,
	})

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_runs_total{outcome="completed",source="example"} 1`)
	assert.Contains(t, out, `test_unit_candidates_total{status="Pass"} 3`)
	assert.Contains(t, out, `test_unit_record_failures_total{code="CAND_004"} 1`)
	assert.Contains(t, out, `test_unit_depiction_failures_total 1`)
	assert.Contains(t, out, `test_unit_run_records_count{source="example"} 1`)
}

func TestAppMetrics_RecordRun_RejectedSkipsCounts(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	m.RecordRun(RunObservation{Source: "paste", Outcome: OutcomeRejected, ByStatus: map[string]int{"Pass": 9}})

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_runs_total{outcome="rejected",source="paste"} 1`)
	assert.NotContains(t, out, `test_unit_candidates_total{status="Pass"}`)
}

func TestAppMetrics_RecordHTTPAndPublish(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	m.RecordHTTPRequest("GET", "/healthz", 200, 3*time.Millisecond)
	m.RecordPublish("minio", time.Millisecond, nil)
	m.RecordPublish("kafka", time.Millisecond, errors.New("down"))

	out := scrape(t, c)
	assert.Contains(t, out, `test_unit_http_requests_total{method="GET",path="/healthz",status_code="200"} 1`)
	assert.Contains(t, out, `test_unit_publish_total{outcome="ok",sink="minio"} 1`)
	assert.Contains(t, out, `test_unit_publish_total{outcome="error",sink="kafka"} 1`)
}

//Personal.AI order the ending
