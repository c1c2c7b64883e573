package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ChristianF88/buddyx/grouping"
)

func sampleResult() *grouping.Result {
	return &grouping.Result{
		Groups: []grouping.Group{
			{Items: []string{"CAT", "DOG"}, MemberIDs: []int{1, 2}},
			{Items: []string{"FISH"}, MemberIDs: []int{3, 4, 5}},
		},
		Solitary:          []int{6},
		TotalUsers:        6,
		MaxSignatureWidth: 7,
		Timings: []grouping.StageTiming{
			{Stage: grouping.StageSortItems, Duration: 2 * time.Millisecond},
			{Stage: grouping.StageScan, Duration: time.Millisecond},
		},
	}
}

func TestObserveGrouping(t *testing.T) {
	c := NewCollector()
	c.ObserveGrouping(sampleResult())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"users", promtestutil.ToFloat64(c.users), 6},
		{"groups", promtestutil.ToFloat64(c.groups), 2},
		{"solitary", promtestutil.ToFloat64(c.solitary), 1},
		{"max signature width", promtestutil.ToFloat64(c.maxSignatureWidth), 7},
		{"sort stage", promtestutil.ToFloat64(c.stageDuration.WithLabelValues(grouping.StageSortItems)), 0.002},
	}
	for _, tt := range checks {
		if tt.got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}

	if n := promtestutil.CollectAndCount(c.groupSize); n != 1 {
		t.Errorf("expected one histogram series, got %d", n)
	}
}

func TestObserveTopK(t *testing.T) {
	c := NewCollector()
	c.ObserveTopK(10, 3)
	if got := promtestutil.ToFloat64(c.topkCandidates); got != 10 {
		t.Errorf("expected 10 candidates, got %v", got)
	}
	if got := promtestutil.ToFloat64(c.topkSelected); got != 3 {
		t.Errorf("expected 3 selected, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.ObserveGrouping(sampleResult())

	path := filepath.Join(t.TempDir(), "buddyx.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{
		"buddyx_users 6",
		"buddyx_groups 2",
		"buddyx_solitary_users 1",
		`buddyx_stage_duration_seconds{stage="sort_items"}`,
		"buddyx_group_size_count 2",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("textfile missing %q:\n%s", want, content)
		}
	}
}
