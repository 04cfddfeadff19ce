// Package output emits typed log entries that the CLI log handler
// renders as boxes, tables and progress indicators.
package output

import (
	"fmt"
	"sort"

	"github.com/apex/log"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/notify"
	"github.com/asdp-project/asdp-cli/internal/schemacache"
	"github.com/asdp-project/asdp-cli/internal/stagegate"
	"github.com/montanaflynn/stats"
)

// SectionTitle logs a section title.
func SectionTitle(text string) {
	log.WithFields(log.Fields{
		"type":  "section_title",
		"title": text,
	}).Info(text)
}

// StageProgress logs the progress indicator for the current stage.
func StageProgress(current stagegate.Stage) {
	var (
		labels   []string
		statuses []string
	)
	for _, stage := range stagegate.All() {
		labels = append(labels, stage.String())
		statuses = append(statuses, string(stagegate.StatusOf(stage, current)))
	}
	log.WithFields(log.Fields{
		"type":        "stage_progress",
		"current":     int(current),
		"percent":     stagegate.Percent(current),
		"stages":      labels,
		"statuses":    statuses,
		"description": current.Description(),
	}).Info(current.Title())
}

// Toast logs a toast.
func Toast(toast notify.Toast) {
	entry := log.WithFields(log.Fields{
		"type": "toast",
		"kind": string(toast.Kind),
		"id":   toast.ID,
	})
	if toast.Kind == notify.KindError {
		entry.Error(toast.Message)
		return
	}
	entry.Info(toast.Message)
}

// InlineWarning logs the warning shown when a stage transition is blocked.
func InlineWarning(message string) {
	log.WithField("type", "inline_warning").Warn(message)
}

// Grid logs a table whose rows keep their order.
func Grid(title string, header []string, rows [][]string) {
	log.WithFields(log.Fields{
		"type":   "grid",
		"header": header,
		"rows":   rows,
	}).Info(title)
}

// SchemaSummary logs the summary statistics of a dataset followed
// by its data types in source column order.
func SchemaSummary(schema model.DatasetSchema) {
	cache := schemacache.New()
	cache.Set(schema)
	log.WithFields(log.Fields{
		"type":                 "table",
		"Total Rows":           schema.Rows,
		"Total Columns":        schema.Columns,
		"Columns with Missing": len(schema.MissingValues),
		"Numeric Columns":      len(cache.NumericColumns()),
	}).Info("dataset summary")
	var rows [][]string
	for _, name := range schema.ColumnNames {
		rows = append(rows, []string{name, schema.DataTypes[name]})
	}
	Grid("data types", []string{"Column", "Data Type"}, rows)
}

// QualityScore returns the overall data quality score of a result, which
// is the mean of completeness, the share of non-outliers and consistency,
// rounded to one decimal place.
func QualityScore(result model.ProcessingResult) (float64, error) {
	mean, err := stats.Mean(stats.Float64Data{
		result.Completeness,
		100 - result.OutlierPercentage,
		result.Consistency,
	})
	if err != nil {
		return 0, err
	}
	return stats.Round(mean, 1)
}

// Results logs the metrics of a processing result and its estimates.
//
// The estimates follow the order of columns; estimates for columns not
// listed there follow in alphabetical order.
func Results(result model.ProcessingResult, columns []string) {
	fields := log.Fields{
		"type":               "table",
		"Rows Processed":     result.RowsProcessed,
		"Outliers Detected":  result.OutliersDetected,
		"Missing Imputed":    result.MissingImputed,
		"Processing Time":    fmt.Sprintf("%.2fs", result.ProcessingTime),
		"Completeness":       fmt.Sprintf("%.1f%%", result.Completeness),
		"Outlier Percentage": fmt.Sprintf("%.1f%%", result.OutlierPercentage),
		"Consistency":        fmt.Sprintf("%.1f%%", result.Consistency),
	}
	if score, err := QualityScore(result); err == nil {
		fields["Quality Score"] = fmt.Sprintf("%.1f%%", score)
	}
	log.WithFields(fields).Info("processing results")
	Estimates(result.Estimates, columns)
}

// Estimates logs the per-column estimates.
func Estimates(estimates map[string]model.ColumnEstimate, columns []string) {
	if len(estimates) <= 0 {
		return
	}
	var rows [][]string
	for _, name := range estimateOrder(estimates, columns) {
		e := estimates[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.2f", e.Mean),
			fmt.Sprintf("%.2f", e.Std),
			fmt.Sprintf("%.2f", e.Min),
			fmt.Sprintf("%.2f", e.Max),
		})
	}
	log.WithFields(log.Fields{
		"type":   "estimates",
		"header": []string{"Column", "Mean", "Std", "Min", "Max"},
		"rows":   rows,
	}).Info("estimates")
}

func estimateOrder(estimates map[string]model.ColumnEstimate, columns []string) []string {
	var (
		out  []string
		rest []string
		seen = make(map[string]bool)
	)
	for _, name := range columns {
		if _, found := estimates[name]; found && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	for name := range estimates {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
