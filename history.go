package evalconsole

import "time"

// Operation names recorded in the run history.
const (
	OperationGenerate         = "generate"
	OperationEvaluate         = "evaluate"
	OperationEvaluateTwoPhase = "evaluate-two-phase"
	OperationCompare          = "compare"
)

// HistoryEntry records one successful console operation.
type HistoryEntry struct {
	Operation  string    `json:"operation"`
	At         time.Time `json:"at"`
	Score      string    `json:"score,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	ReportMD   string    `json:"report_md,omitempty"`
	ReportJSON string    `json:"report_json,omitempty"`
}

// HistoryStore keeps the run history. Entries are returned oldest first.
type HistoryStore interface {
	Append(entry HistoryEntry) error
	Load() ([]HistoryEntry, error)
}

// historyEntry builds the history record for a finished operation. report
// may be nil.
func historyEntry(operation string, at time.Time, report *Report) HistoryEntry {
	e := HistoryEntry{Operation: operation, At: at.UTC()}
	if report == nil {
		return e
	}
	if report.Summary != nil {
		e.Score = report.Summary.OverallScore
		e.Suggestion = report.Summary.FinalSuggestion
	}
	if report.Files != nil {
		e.ReportMD = report.Files.ReportMD
		e.ReportJSON = report.Files.ReportJSON
	}
	return e
}
