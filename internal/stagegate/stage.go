package stagegate

//
// Stages and their metadata.
//

import (
	"fmt"
	"math"
)

// Stage is a workflow stage. Valid stages are in [FirstStage, LastStage].
type Stage int

const (
	StageUpload Stage = iota + 1
	StageSummary
	StageConfiguration
	StageOutliers
	StageWeights
	StageResults
)

const (
	// FirstStage is the first workflow stage.
	FirstStage = StageUpload

	// LastStage is the last workflow stage.
	LastStage = StageResults
)

// Clamp converts any integer into a valid stage.
func Clamp(n int) Stage {
	return Stage(max(int(FirstStage), min(n, int(LastStage))))
}

// All returns all the stages in workflow order.
func All() []Stage {
	out := make([]Stage, 0, int(LastStage))
	for s := FirstStage; s <= LastStage; s++ {
		out = append(out, s)
	}
	return out
}

type stageInfo struct {
	short       string
	title       string
	path        string
	description string
}

var stageInfos = map[Stage]stageInfo{
	StageUpload: {
		short:       "Upload",
		title:       "Upload Survey Data",
		path:        "/upload",
		description: "Upload your survey data file",
	},
	StageSummary: {
		short:       "Summary",
		title:       "Data Summary",
		path:        "/summary",
		description: "View data overview and statistics",
	},
	StageConfiguration: {
		short:       "Config",
		title:       "Processing Configuration",
		path:        "/configuration",
		description: "Configure data processing settings",
	},
	StageOutliers: {
		short:       "Outliers",
		title:       "Outlier Detection",
		path:        "/outliers",
		description: "Detect and handle outliers",
	},
	StageWeights: {
		short:       "Weights",
		title:       "Survey Weights",
		path:        "/weights",
		description: "Configure survey weights and estimation",
	},
	StageResults: {
		short:       "Results",
		title:       "Results & Reports",
		path:        "/results",
		description: "View results and generate reports",
	},
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	if info, found := stageInfos[s]; found {
		return info.short
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Title returns the long human readable stage title.
func (s Stage) Title() string {
	return stageInfos[s].title
}

// Path returns the route path of the stage (e.g., "/outliers").
func (s Stage) Path() string {
	return stageInfos[s].path
}

// Description returns a one line description of the stage.
func (s Stage) Description() string {
	return stageInfos[s].description
}

// Status is the status of a stage relative to the current stage.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCurrent   Status = "current"
	StatusPending   Status = "pending"
)

// StatusOf returns the status of stage given the current stage.
func StatusOf(stage, current Stage) Status {
	switch {
	case stage < current:
		return StatusCompleted
	case stage == current:
		return StatusCurrent
	default:
		return StatusPending
	}
}

// Percent returns the workflow completion percentage at the current stage.
func Percent(current Stage) int {
	return int(math.Round(float64(current) / float64(LastStage) * 100))
}
