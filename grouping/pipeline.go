package grouping

import (
	"fmt"
	"log/slog"
	"time"
)

// Pipeline stage names, in execution order.
const (
	StageSortItems      = "sort_items"
	StageSignatures     = "build_signatures"
	StageSortSignatures = "sort_signatures"
	StageScan           = "scan_groups"
)

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result is the outcome of one grouping run.
type Result struct {
	Groups []Group
	// Solitary holds the ids of users that share their item list with nobody.
	Solitary []int
	// Sorted is the final signature-ordered user list.
	Sorted            []UserRecord
	TotalUsers        int
	MaxItemWidth      int
	MaxSignatureWidth int
	Timings           []StageTiming
}

// Run groups the users of ds by identical sorted item lists. ds is not
// modified; MaxSignatureWidth of the result reports the signature width used.
//
// Stages: per-user pad/sort/strip, signature building, global signature
// sort, and the group scan.
func Run(ds *Dataset) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	// Reject bad input before any sort touches it
	for _, u := range ds.Users {
		if err := ValidateRecord(u); err != nil {
			return nil, err
		}
	}

	res := &Result{TotalUsers: len(ds.Users), MaxItemWidth: ds.MaxItemWidth}
	timed := func(stage string, fn func()) {
		start := time.Now()
		fn()
		d := time.Since(start)
		res.Timings = append(res.Timings, StageTiming{Stage: stage, Duration: d})
		slog.Debug("stage complete", "stage", stage, "duration", d, "users", len(ds.Users))
	}

	var users []UserRecord
	timed(StageSortItems, func() {
		users = SortUserItems(ds.Users)
	})
	timed(StageSignatures, func() {
		users, res.MaxSignatureWidth = BuildSignatures(users)
	})
	timed(StageSortSignatures, func() {
		users = SortBySignature(users, res.MaxSignatureWidth)
	})
	timed(StageScan, func() {
		res.Groups, res.Solitary = ScanGroups(users)
	})
	res.Sorted = users

	return res, nil
}

// GroupUsers builds a Dataset from users and runs the pipeline on it.
func GroupUsers(users []UserRecord) (*Result, error) {
	ds, err := NewDataset(users)
	if err != nil {
		return nil, err
	}
	return Run(ds)
}
