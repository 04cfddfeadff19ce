// Package stagegate implements the state machine over the six workflow
// stages and the preconditions guarding forward transitions.
//
// Forward transitions through [*Gate.Next] are gated: when the stage being
// left is not correctly configured, Next returns a [*Violation] and the
// current stage does not change. A violation is not a failure, just a
// blocked transition that callers show inline next to the action.
//
// Backward transitions ([*Gate.Prev]) and direct navigation ([*Gate.GoTo])
// are never gated. GoTo is intentionally an escape hatch allowing to jump
// to any stage, including Results, with an incomplete configuration.
package stagegate

import (
	"errors"
	"fmt"

	"github.com/asdp-project/asdp-cli/internal/configmodel"
	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/schemacache"
)

// Inputs contains what the gate needs to evaluate preconditions.
type Inputs struct {
	// Schema is the MANDATORY schema cache.
	Schema *schemacache.Cache

	// Config is the configuration accumulated so far.
	Config model.Configuration
}

// Violation is a blocked forward transition.
type Violation struct {
	// From is the stage we tried to leave.
	From Stage

	// To is the stage we tried to reach.
	To Stage

	// Field is the configuration path (or "dataset") missing or invalid.
	Field string

	// Message is the human readable inline warning.
	Message string

	// Err is the OPTIONAL underlying validation error.
	Err error
}

// Error implements error.
func (v *Violation) Error() string {
	return fmt.Sprintf("stagegate: %s -> %s: %s", v.From, v.To, v.Message)
}

// Unwrap returns the underlying validation error, if any.
func (v *Violation) Unwrap() error {
	return v.Err
}

// AsViolation returns the [*Violation] wrapped by err, if any.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Gate is the stage state machine. The zero value is invalid; use [New].
type Gate struct {
	current Stage
}

// New returns a [*Gate] positioned on the Upload stage.
func New() *Gate {
	return &Gate{current: FirstStage}
}

// Current returns the current stage.
func (g *Gate) Current() Stage {
	return g.current
}

// Next attempts to move to the next stage. On the last stage, Next is a
// no-op. When the precondition of the transition does not hold, Next
// returns a [*Violation] and does not change the current stage.
func (g *Gate) Next(in Inputs) error {
	if g.current >= LastStage {
		return nil
	}
	if err := Check(g.current, in); err != nil {
		return err
	}
	g.current++
	return nil
}

// Prev moves to the previous stage, unless we are on the first stage.
func (g *Gate) Prev() Stage {
	g.current = Clamp(int(g.current) - 1)
	return g.current
}

// GoTo clamps n into the valid range and moves there without checking
// any precondition.
func (g *Gate) GoTo(n int) Stage {
	g.current = Clamp(n)
	return g.current
}

// Reset moves back to the first stage.
func (g *Gate) Reset() {
	g.current = FirstStage
}

// Check evaluates the precondition for leaving the from stage forward.
func Check(from Stage, in Inputs) error {
	if in.Schema == nil {
		in.Schema = schemacache.New()
	}
	switch from {
	case StageUpload:
		return checkUpload(in)
	case StageConfiguration:
		return checkConfiguration(in)
	case StageOutliers:
		return checkOutliers(in)
	case StageWeights:
		return checkWeights(in)
	default:
		return nil
	}
}

func violation(from Stage, field, message string, err error) *Violation {
	return &Violation{
		From:    from,
		To:      Clamp(int(from) + 1),
		Field:   field,
		Message: message,
		Err:     err,
	}
}

func checkUpload(in Inputs) error {
	if in.Schema == nil || in.Schema.IsEmpty() {
		return violation(StageUpload, "dataset", "Please upload a file first", nil)
	}
	return nil
}

func checkConfiguration(in Inputs) error {
	const field = "imputation.columns"
	if len(in.Config.Imputation.Columns) <= 0 {
		return violation(StageConfiguration, field,
			"Please select at least one column for imputation", nil)
	}
	if err := checkMembership(StageConfiguration, field, in.Config.Imputation.Columns, in.Schema.HasColumn); err != nil {
		return err
	}
	return checkDomains(StageConfiguration, in.Config, "imputation.method")
}

func checkOutliers(in Inputs) error {
	const field = "outliers.columns"
	if len(in.Config.Outliers.Columns) <= 0 {
		return violation(StageOutliers, field,
			"Please select at least one column for outlier detection", nil)
	}
	if err := checkMembership(StageOutliers, field, in.Config.Outliers.Columns, in.Schema.IsNumeric); err != nil {
		return err
	}
	return checkDomains(StageOutliers, in.Config,
		"outliers.detection_method", "outliers.handling_method", "outliers.threshold")
}

func checkWeights(in Inputs) error {
	if len(in.Config.EstimateColumns) <= 0 {
		return violation(StageWeights, "estimate_columns",
			"Please select columns and estimation methods to continue", nil)
	}
	if len(in.Config.EstimationMethods) <= 0 {
		return violation(StageWeights, "estimation_methods",
			"Please select columns and estimation methods to continue", nil)
	}
	if err := checkMembership(StageWeights, "estimate_columns", in.Config.EstimateColumns, in.Schema.IsNumeric); err != nil {
		return err
	}
	if column := in.Config.Weights.Column; column != "" && !in.Schema.HasColumn(column) {
		return violation(StageWeights, "weights.column",
			fmt.Sprintf("Weight column %q is not in the dataset", column), nil)
	}
	return checkDomains(StageWeights, in.Config,
		"weights.normalization", "estimation_methods", "confidence_level",
		"bootstrap_method", "bootstrap_samples")
}

func checkMembership(from Stage, field string, columns []string, accept func(string) bool) error {
	for _, column := range columns {
		if accept(column) {
			continue
		}
		message := fmt.Sprintf("Column %q is not in the dataset", column)
		if field != "imputation.columns" {
			message = fmt.Sprintf("Column %q is not a numeric column of the dataset", column)
		}
		return violation(from, field, message, nil)
	}
	return nil
}

func checkDomains(from Stage, config model.Configuration, paths ...string) error {
	for _, path := range paths {
		if err := configmodel.Validate(config, path); err != nil {
			return violation(from, path, err.Error(), err)
		}
	}
	return nil
}
