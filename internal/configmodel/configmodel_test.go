package configmodel

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/google/go-cmp/cmp"
)

// snapshot returns the value of every leaf field keyed by path.
func snapshot(t *testing.T, c model.Configuration) map[string]any {
	out := make(map[string]any)
	for _, info := range Paths() {
		v, err := Get(c, info.Path)
		if err != nil {
			t.Fatal(err)
		}
		out[info.Path] = v
	}
	return out
}

// randomValue returns a random value suitable for the given path.
func randomValue(r *rand.Rand, info PathInfo) any {
	switch info.Kind {
	case KindBool:
		return r.Intn(2) == 0
	case KindFloat:
		return float64(r.Intn(1000)) / 100
	case KindInt:
		return r.Intn(20000)
	case KindEnum:
		return info.Values[r.Intn(len(info.Values))]
	case KindStringSet, KindEnumSet:
		pool := []string{"age", "income", "weight", "region"}
		if info.Kind == KindEnumSet {
			pool = info.Values
		}
		out := []string{}
		for _, entry := range pool {
			if r.Intn(2) == 0 {
				out = append(out, entry)
			}
		}
		return out
	default:
		return fmt.Sprintf("value-%d", r.Intn(1000))
	}
}

func TestUpdateStructuralIndependence(t *testing.T) {
	r := rand.New(rand.NewSource(20240501))
	paths := Paths()
	current := Default()
	for iteration := 0; iteration < 2000; iteration++ {
		info := paths[r.Intn(len(paths))]
		value := randomValue(r, info)
		before := snapshot(t, current)
		next, err := Update(current, info.Path, value)
		if err != nil {
			t.Fatal(err)
		}
		after := snapshot(t, next)
		for path, v := range before {
			if path == info.Path {
				continue
			}
			if diff := cmp.Diff(v, after[path]); diff != "" {
				t.Fatalf("updating %s changed %s: %s", info.Path, path, diff)
			}
		}
		// the input configuration must not have been touched
		if diff := cmp.Diff(before, snapshot(t, current)); diff != "" {
			t.Fatalf("updating %s mutated the input: %s", info.Path, diff)
		}
		current = next
	}
}

func TestUpdateDoesNotShareSlices(t *testing.T) {
	c, err := Update(Default(), "imputation.columns", []string{"age"})
	if err != nil {
		t.Fatal(err)
	}
	d, err := Update(c, "outliers.threshold", 3.0)
	if err != nil {
		t.Fatal(err)
	}
	d.Imputation.Columns[0] = "mutated"
	if c.Imputation.Columns[0] != "age" {
		t.Fatal("slices are shared between versions")
	}
}

func TestUpdateErrors(t *testing.T) {
	t.Run("unknown path", func(t *testing.T) {
		_, err := Update(Default(), "imputation", "mean")
		if !errors.Is(err, ErrUnknownPath) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		c := Default()
		out, err := Update(c, "outliers.threshold", "3")
		if !errors.Is(err, ErrBadValue) {
			t.Fatal("unexpected error", err)
		}
		if diff := cmp.Diff(c, out); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("non integral bootstrap samples", func(t *testing.T) {
		_, err := Update(Default(), "bootstrap_samples", 100.5)
		if !errors.Is(err, ErrBadValue) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("out of domain values are accepted", func(t *testing.T) {
		c, err := Update(Default(), "outliers.threshold", 42.0)
		if err != nil {
			t.Fatal(err)
		}
		if c.Outliers.Threshold != 42 {
			t.Fatal("unexpected threshold")
		}
	})
}

func TestDefault(t *testing.T) {
	expect := model.Configuration{
		Imputation: model.ImputationConfig{
			Method:  "mean",
			Columns: []string{},
		},
		Outliers: model.OutliersConfig{
			DetectionMethod: "iqr",
			HandlingMethod:  "winsorize",
			Columns:         []string{},
			Threshold:       2.0,
		},
		Weights: model.WeightsConfig{
			Normalization: "none",
		},
		EstimateColumns:   []string{},
		EstimationMethods: []model.EstimationMethod{"mean"},
		ConfidenceLevel:   0.95,
		BootstrapMethod:   "percentile",
		BootstrapSamples:  1000,
	}
	if diff := cmp.Diff(expect, Default()); diff != "" {
		t.Fatal(diff)
	}

	t.Run("each call returns independent slices", func(t *testing.T) {
		a := Default()
		a.EstimationMethods[0] = "total"
		if Default().EstimationMethods[0] != "mean" {
			t.Fatal("Default shares state")
		}
	})

	t.Run("the default configuration is valid", func(t *testing.T) {
		if err := Validate(Default()); err != nil {
			t.Fatal(err)
		}
	})
}

func TestToggle(t *testing.T) {
	c := Default()

	t.Run("adds a missing member", func(t *testing.T) {
		out, err := Toggle(c, "estimation_methods", "total")
		if err != nil {
			t.Fatal(err)
		}
		expect := []model.EstimationMethod{"mean", "total"}
		if diff := cmp.Diff(expect, out.EstimationMethods); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("removes a present member", func(t *testing.T) {
		out, err := Toggle(c, "estimation_methods", "mean")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]model.EstimationMethod{}, out.EstimationMethods); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("toggling twice is the identity up to order", func(t *testing.T) {
		out, err := Toggle(c, "imputation.columns", "age")
		if err != nil {
			t.Fatal(err)
		}
		if !Contains(out, "imputation.columns", "age") {
			t.Fatal("expected age")
		}
		out, err = Toggle(out, "imputation.columns", "age")
		if err != nil {
			t.Fatal(err)
		}
		if Contains(out, "imputation.columns", "age") {
			t.Fatal("did not expect age")
		}
	})

	t.Run("refuses non set fields", func(t *testing.T) {
		if _, err := Toggle(c, "outliers.threshold", "x"); !errors.Is(err, ErrNotASet) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestAssign(t *testing.T) {
	tests := []struct {
		assignment string
		check      func(c model.Configuration) bool
		wantErr    error
	}{{
		assignment: "outliers.threshold=3.5",
		check:      func(c model.Configuration) bool { return c.Outliers.Threshold == 3.5 },
	}, {
		assignment: "imputation.columns=age, income,,age",
		check: func(c model.Configuration) bool {
			return cmp.Equal([]string{"age", "income"}, c.Imputation.Columns)
		},
	}, {
		assignment: "estimate_columns=",
		check:      func(c model.Configuration) bool { return len(c.EstimateColumns) == 0 },
	}, {
		assignment: "quality_checks.check_duplicates=true",
		check:      func(c model.Configuration) bool { return c.QualityChecks.CheckDuplicates },
	}, {
		assignment: "bootstrap_samples=500",
		check:      func(c model.Configuration) bool { return c.BootstrapSamples == 500 },
	}, {
		assignment: "weights.column=w=1",
		check:      func(c model.Configuration) bool { return c.Weights.Column == "w=1" },
	}, {
		assignment: "bootstrap_samples=many",
		wantErr:    ErrBadValue,
	}, {
		assignment: "outliers.threshold",
		wantErr:    ErrBadValue,
	}, {
		assignment: "nonexistent=1",
		wantErr:    ErrUnknownPath,
	}}
	for _, tt := range tests {
		t.Run(tt.assignment, func(t *testing.T) {
			c, err := Assign(Default(), tt.assignment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatal("unexpected error", err)
			}
			if tt.wantErr == nil && !tt.check(c) {
				t.Fatalf("unexpected configuration: %+v", c)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("merges over the defaults", func(t *testing.T) {
		doc := []byte(`{
			// survey wave 3
			"imputation": {"method": "median", "columns": ["age", "age", "income"]},
			"estimation_methods": ["total", "mean", "total"],
			"confidence_level": 0.99,
		}`)
		c, err := Load(doc)
		if err != nil {
			t.Fatal(err)
		}
		expect := Default()
		expect.Imputation.Method = model.ImputationMedian
		expect.Imputation.Columns = []string{"age", "income"}
		expect.EstimationMethods = []model.EstimationMethod{"total", "mean"}
		expect.ConfidenceLevel = 0.99
		if diff := cmp.Diff(expect, c); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("null sets become empty sets", func(t *testing.T) {
		c, err := Load([]byte(`{"outliers": {"columns": null}}`))
		if err != nil {
			t.Fatal(err)
		}
		if c.Outliers.Columns == nil || len(c.Outliers.Columns) != 0 {
			t.Fatal("expected an empty non-nil slice")
		}
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		if _, err := Load([]byte(`{"imputation": `)); err == nil {
			t.Fatal("expected an error")
		}
		if _, err := Load([]byte(`{"bootstrap_samples": "x"}`)); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		update  func(c model.Configuration) model.Configuration
		paths   []string
		wantErr bool
	}{{
		name: "threshold below the domain",
		update: func(c model.Configuration) model.Configuration {
			c.Outliers.Threshold = 1.4
			return c
		},
		wantErr: true,
	}, {
		name: "threshold on the upper bound",
		update: func(c model.Configuration) model.Configuration {
			c.Outliers.Threshold = 5.0
			return c
		},
	}, {
		name: "unsupported confidence level",
		update: func(c model.Configuration) model.Configuration {
			c.ConfidenceLevel = 0.8
			return c
		},
		wantErr: true,
	}, {
		name: "too many bootstrap samples",
		update: func(c model.Configuration) model.Configuration {
			c.BootstrapSamples = 10001
			return c
		},
		wantErr: true,
	}, {
		name: "unknown detection method",
		update: func(c model.Configuration) model.Configuration {
			c.Outliers.DetectionMethod = "dbscan"
			return c
		},
		wantErr: true,
	}, {
		name: "unknown estimation method",
		update: func(c model.Configuration) model.Configuration {
			c.EstimationMethods = []model.EstimationMethod{"median"}
			return c
		},
		wantErr: true,
	}, {
		name: "only the named paths are checked",
		update: func(c model.Configuration) model.Configuration {
			c.BootstrapSamples = 1
			return c
		},
		paths: []string{"outliers.threshold"},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.update(Default()), tt.paths...)
			if (err != nil) != tt.wantErr {
				t.Fatal("unexpected error", err)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Fatal("expected ErrInvalid", err)
			}
		})
	}
}
