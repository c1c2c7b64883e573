package output

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ChristianF88/buddyx/grouping"
	"github.com/ChristianF88/buddyx/topk"
	"github.com/ChristianF88/buddyx/version"
)

// JSONOutput represents the complete run output structure
type JSONOutput struct {
	Metadata Metadata      `json:"metadata"`
	General  General       `json:"general"`
	Grouping *GroupingData `json:"grouping,omitempty"`
	TopK     *TopKData     `json:"topk,omitempty"`
	Warnings []Warning     `json:"warnings"`
	Errors   []Error       `json:"errors"`
}

// Metadata contains information about the run
type Metadata struct {
	RunID        string    `json:"run_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	AnalysisType string    `json:"analysis_type"`
	Version      string    `json:"version"`
	DurationMS   int64     `json:"duration_ms"`
}

// General contains input statistics
type General struct {
	InputFile         string  `json:"input_file,omitempty"`
	TotalRecords      int     `json:"total_records"`
	MaxItemWidth      int     `json:"max_item_width,omitempty"`
	MaxSignatureWidth int     `json:"max_signature_width,omitempty"`
	Parsing           Parsing `json:"parsing"`
}

// Parsing contains parsing performance metrics
type Parsing struct {
	DurationMS    int64 `json:"duration_ms"`
	RatePerSecond int64 `json:"rate_per_second"`
}

// GroupingData holds the groups found and the users left alone
type GroupingData struct {
	TotalGroups   int           `json:"total_groups"`
	GroupedUsers  int           `json:"grouped_users"`
	Groups        []GroupResult `json:"groups"`
	SolitaryUsers []int         `json:"solitary_users"`
	Stages        []StageResult `json:"stages"`
}

// GroupResult is one numbered group
type GroupResult struct {
	Number  int      `json:"number"`
	Items   []string `json:"items"`
	Members []int    `json:"members"`
}

// StageResult is the timing of one pipeline stage
type StageResult struct {
	Stage      string `json:"stage"`
	DurationUS int64  `json:"duration_us"`
}

// TopKData holds a top-k selection
type TopKData struct {
	K       int         `json:"k"`
	Entries []TopKEntry `json:"entries"`
}

// TopKEntry is one ranked entry
type TopKEntry struct {
	Rank  int `json:"rank"`
	ID    int `json:"id"`
	Score int `json:"score"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewJSONOutput creates a new JSONOutput with a fresh run id
func NewJSONOutput(analysisType string, startTime time.Time) *JSONOutput {
	return &JSONOutput{
		Metadata: Metadata{
			RunID:        uuid.NewString(),
			GeneratedAt:  time.Now().UTC(),
			AnalysisType: analysisType,
			Version:      version.Version,
			DurationMS:   time.Since(startTime).Milliseconds(),
		},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// SetGrouping fills the grouping section and widths from res
func (j *JSONOutput) SetGrouping(res *grouping.Result) {
	data := &GroupingData{
		TotalGroups:   len(res.Groups),
		Groups:        make([]GroupResult, 0, len(res.Groups)),
		SolitaryUsers: []int{},
		Stages:        make([]StageResult, 0, len(res.Timings)),
	}
	for i, g := range res.Groups {
		data.GroupedUsers += len(g.MemberIDs)
		data.Groups = append(data.Groups, GroupResult{
			Number:  i + 1,
			Items:   g.Items,
			Members: g.MemberIDs,
		})
	}
	if res.Solitary != nil {
		data.SolitaryUsers = res.Solitary
	}
	for _, st := range res.Timings {
		data.Stages = append(data.Stages, StageResult{Stage: st.Stage, DurationUS: st.Duration.Microseconds()})
	}

	j.Grouping = data
	j.General.TotalRecords = res.TotalUsers
	j.General.MaxItemWidth = res.MaxItemWidth
	j.General.MaxSignatureWidth = res.MaxSignatureWidth
}

// SetTopK fills the top-k section
func (j *JSONOutput) SetTopK(k int, pairs []topk.Pair) {
	data := &TopKData{K: k, Entries: make([]TopKEntry, 0, len(pairs))}
	for i, p := range pairs {
		data.Entries = append(data.Entries, TopKEntry{Rank: i + 1, ID: p.ID, Score: p.Score})
	}
	j.TopK = data
}

// ToJSON converts the output to pretty-printed JSON
func (j *JSONOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

// ToCompactJSON converts the output to compact JSON
func (j *JSONOutput) ToCompactJSON() ([]byte, error) {
	return json.Marshal(j)
}

// AddWarning adds a warning to the output
func (j *JSONOutput) AddWarning(warningType, message string, count int) {
	j.Warnings = append(j.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output
func (j *JSONOutput) AddError(errorType, message string, count int) {
	j.Errors = append(j.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// UpdateDuration updates the duration in metadata
func (j *JSONOutput) UpdateDuration(startTime time.Time) {
	j.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}
