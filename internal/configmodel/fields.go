package configmodel

//
// Table of the addressable leaf fields.
//

import (
	"fmt"
	"math"
	"sort"

	"github.com/asdp-project/asdp-cli/internal/model"
)

// Kind is the kind of a leaf field.
type Kind string

const (
	KindString    Kind = "string"
	KindEnum      Kind = "enum"
	KindBool      Kind = "bool"
	KindFloat     Kind = "float"
	KindInt       Kind = "int"
	KindStringSet Kind = "string_set"
	KindEnumSet   Kind = "enum_set"
)

// PathInfo describes an addressable leaf field.
type PathInfo struct {
	// Path is the dotted path (e.g., "imputation.method").
	Path string

	// Kind is the field kind.
	Kind Kind

	// Values contains the allowed values for enum kinds.
	Values []string
}

type field struct {
	kind   Kind
	values []string
	get    func(c *model.Configuration) any
	set    func(c *model.Configuration, value any) error
}

// Paths returns all the addressable leaf fields sorted by path.
func Paths() []PathInfo {
	out := make([]PathInfo, 0, len(fields))
	for path, f := range fields {
		out = append(out, PathInfo{Path: path, Kind: f.kind, Values: append([]string{}, f.values...)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Lookup returns information about the given path.
func Lookup(path string) (PathInfo, bool) {
	f, found := fields[path]
	if !found {
		return PathInfo{}, false
	}
	return PathInfo{Path: path, Kind: f.kind, Values: append([]string{}, f.values...)}, true
}

var fields = map[string]field{
	"imputation.method": enumField(model.ValidImputationMethods, func(c *model.Configuration) *model.ImputationMethod {
		return &c.Imputation.Method
	}),
	"imputation.columns": stringSetField(func(c *model.Configuration) *[]string {
		return &c.Imputation.Columns
	}),
	"imputation.preserve_structure": boolField(func(c *model.Configuration) *bool {
		return &c.Imputation.PreserveStructure
	}),
	"imputation.generate_report": boolField(func(c *model.Configuration) *bool {
		return &c.Imputation.GenerateReport
	}),
	"outliers.detection_method": enumField(model.ValidDetectionMethods, func(c *model.Configuration) *model.DetectionMethod {
		return &c.Outliers.DetectionMethod
	}),
	"outliers.handling_method": enumField(model.ValidHandlingMethods, func(c *model.Configuration) *model.HandlingMethod {
		return &c.Outliers.HandlingMethod
	}),
	"outliers.columns": stringSetField(func(c *model.Configuration) *[]string {
		return &c.Outliers.Columns
	}),
	"outliers.threshold": floatField(func(c *model.Configuration) *float64 {
		return &c.Outliers.Threshold
	}),
	"outliers.replacement_value": stringField(func(c *model.Configuration) *string {
		return &c.Outliers.ReplacementValue
	}),
	"weights.column": stringField(func(c *model.Configuration) *string {
		return &c.Weights.Column
	}),
	"weights.normalization": enumField(model.ValidNormalizations, func(c *model.Configuration) *model.Normalization {
		return &c.Weights.Normalization
	}),
	"estimate_columns": stringSetField(func(c *model.Configuration) *[]string {
		return &c.EstimateColumns
	}),
	"estimation_methods": enumSetField(model.ValidEstimationMethods, func(c *model.Configuration) *[]model.EstimationMethod {
		return &c.EstimationMethods
	}),
	"confidence_level": floatField(func(c *model.Configuration) *float64 {
		return &c.ConfidenceLevel
	}),
	"bootstrap_method": enumField(model.ValidBootstrapMethods, func(c *model.Configuration) *model.BootstrapMethod {
		return &c.BootstrapMethod
	}),
	"bootstrap_samples": intField(func(c *model.Configuration) *int {
		return &c.BootstrapSamples
	}),
	"quality_checks.check_duplicates": boolField(func(c *model.Configuration) *bool {
		return &c.QualityChecks.CheckDuplicates
	}),
	"quality_checks.validate_types": boolField(func(c *model.Configuration) *bool {
		return &c.QualityChecks.ValidateTypes
	}),
	"quality_checks.check_outliers": boolField(func(c *model.Configuration) *bool {
		return &c.QualityChecks.CheckOutliers
	}),
	"quality_checks.generate_report": boolField(func(c *model.Configuration) *bool {
		return &c.QualityChecks.GenerateReport
	}),
}

func stringField(ptr func(c *model.Configuration) *string) field {
	return field{
		kind: KindString,
		get:  func(c *model.Configuration) any { return *ptr(c) },
		set: func(c *model.Configuration, value any) error {
			s, good := value.(string)
			if !good {
				return fmt.Errorf("expected string, got %T", value)
			}
			*ptr(c) = s
			return nil
		},
	}
}

func enumField[T ~string](valid []T, ptr func(c *model.Configuration) *T) field {
	return field{
		kind:   KindEnum,
		values: enumStrings(valid),
		get:    func(c *model.Configuration) any { return string(*ptr(c)) },
		set: func(c *model.Configuration, value any) error {
			switch v := value.(type) {
			case T:
				*ptr(c) = v
			case string:
				*ptr(c) = T(v)
			default:
				return fmt.Errorf("expected string, got %T", value)
			}
			return nil
		},
	}
}

func boolField(ptr func(c *model.Configuration) *bool) field {
	return field{
		kind: KindBool,
		get:  func(c *model.Configuration) any { return *ptr(c) },
		set: func(c *model.Configuration, value any) error {
			b, good := value.(bool)
			if !good {
				return fmt.Errorf("expected bool, got %T", value)
			}
			*ptr(c) = b
			return nil
		},
	}
}

func floatField(ptr func(c *model.Configuration) *float64) field {
	return field{
		kind: KindFloat,
		get:  func(c *model.Configuration) any { return *ptr(c) },
		set: func(c *model.Configuration, value any) error {
			switch v := value.(type) {
			case float64:
				*ptr(c) = v
			case float32:
				*ptr(c) = float64(v)
			case int:
				*ptr(c) = float64(v)
			default:
				return fmt.Errorf("expected number, got %T", value)
			}
			if math.IsNaN(*ptr(c)) {
				return fmt.Errorf("NaN is not a number we accept")
			}
			return nil
		},
	}
}

func intField(ptr func(c *model.Configuration) *int) field {
	return field{
		kind: KindInt,
		get:  func(c *model.Configuration) any { return *ptr(c) },
		set: func(c *model.Configuration, value any) error {
			switch v := value.(type) {
			case int:
				*ptr(c) = v
			case int64:
				*ptr(c) = int(v)
			case float64:
				if v != math.Trunc(v) {
					return fmt.Errorf("expected integer, got %v", v)
				}
				*ptr(c) = int(v)
			default:
				return fmt.Errorf("expected integer, got %T", value)
			}
			return nil
		},
	}
}

func stringSetField(ptr func(c *model.Configuration) *[]string) field {
	return field{
		kind: KindStringSet,
		get:  func(c *model.Configuration) any { return copyStrings(*ptr(c)) },
		set: func(c *model.Configuration, value any) error {
			v, good := value.([]string)
			if !good {
				return fmt.Errorf("expected []string, got %T", value)
			}
			*ptr(c) = dedupe(v)
			return nil
		},
	}
}

func enumSetField[T ~string](valid []T, ptr func(c *model.Configuration) *[]T) field {
	return field{
		kind:   KindEnumSet,
		values: enumStrings(valid),
		get:    func(c *model.Configuration) any { return enumStrings(*ptr(c)) },
		set: func(c *model.Configuration, value any) error {
			var members []string
			switch v := value.(type) {
			case []T:
				members = enumStrings(v)
			case []string:
				members = v
			default:
				return fmt.Errorf("expected []string, got %T", value)
			}
			out := []T{}
			for _, entry := range dedupe(members) {
				out = append(out, T(entry))
			}
			*ptr(c) = out
			return nil
		},
	}
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// dedupe returns a new slice without duplicates preserving the first occurrence order.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
