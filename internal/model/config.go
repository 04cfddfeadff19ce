package model

//
// Pipeline configuration
//

// ImputationMethod is the strategy used to fill missing values.
type ImputationMethod string

const (
	ImputationMean          ImputationMethod = "mean"
	ImputationMedian        ImputationMethod = "median"
	ImputationMode          ImputationMethod = "mode"
	ImputationForwardFill   ImputationMethod = "forward_fill"
	ImputationBackwardFill  ImputationMethod = "backward_fill"
	ImputationInterpolation ImputationMethod = "interpolation"
)

// ValidImputationMethods contains all valid imputation methods.
var ValidImputationMethods = []ImputationMethod{
	ImputationMean,
	ImputationMedian,
	ImputationMode,
	ImputationForwardFill,
	ImputationBackwardFill,
	ImputationInterpolation,
}

// DetectionMethod is the outlier detection algorithm.
type DetectionMethod string

const (
	DetectionIQR                DetectionMethod = "iqr"
	DetectionZScore             DetectionMethod = "zscore"
	DetectionIsolationForest    DetectionMethod = "isolation_forest"
	DetectionLocalOutlierFactor DetectionMethod = "local_outlier_factor"
)

// ValidDetectionMethods contains all valid detection methods.
var ValidDetectionMethods = []DetectionMethod{
	DetectionIQR,
	DetectionZScore,
	DetectionIsolationForest,
	DetectionLocalOutlierFactor,
}

// HandlingMethod is what the backend does with detected outliers.
type HandlingMethod string

const (
	HandlingRemove    HandlingMethod = "remove"
	HandlingCap       HandlingMethod = "cap"
	HandlingWinsorize HandlingMethod = "winsorize"
	HandlingTransform HandlingMethod = "transform"
)

// ValidHandlingMethods contains all valid handling methods.
var ValidHandlingMethods = []HandlingMethod{
	HandlingRemove,
	HandlingCap,
	HandlingWinsorize,
	HandlingTransform,
}

// Normalization is the survey weights normalization strategy.
type Normalization string

const (
	NormalizationNone    Normalization = "none"
	NormalizationSumToN  Normalization = "sum_to_n"
	NormalizationMeanOne Normalization = "mean_one"
	NormalizationMinOne  Normalization = "min_one"
)

// ValidNormalizations contains all valid normalization strategies.
var ValidNormalizations = []Normalization{
	NormalizationNone,
	NormalizationSumToN,
	NormalizationMeanOne,
	NormalizationMinOne,
}

// EstimationMethod is a statistical estimate to compute.
type EstimationMethod string

const (
	EstimationMean       EstimationMethod = "mean"
	EstimationTotal      EstimationMethod = "total"
	EstimationProportion EstimationMethod = "proportion"
	EstimationRatio      EstimationMethod = "ratio"
)

// ValidEstimationMethods contains all valid estimation methods.
var ValidEstimationMethods = []EstimationMethod{
	EstimationMean,
	EstimationTotal,
	EstimationProportion,
	EstimationRatio,
}

// BootstrapMethod is the bootstrap confidence interval technique.
type BootstrapMethod string

const (
	BootstrapPercentile BootstrapMethod = "percentile"
	BootstrapBCA        BootstrapMethod = "bca"
	BootstrapNormal     BootstrapMethod = "normal"
)

// ValidBootstrapMethods contains all valid bootstrap methods.
var ValidBootstrapMethods = []BootstrapMethod{
	BootstrapPercentile,
	BootstrapBCA,
	BootstrapNormal,
}

// ValidConfidenceLevels contains the allowed confidence levels.
var ValidConfidenceLevels = []float64{0.90, 0.95, 0.99}

const (
	// MinOutlierThreshold is the smallest accepted outlier threshold.
	MinOutlierThreshold = 1.5

	// MaxOutlierThreshold is the largest accepted outlier threshold.
	MaxOutlierThreshold = 5.0

	// MinBootstrapSamples is the smallest accepted number of bootstrap samples.
	MinBootstrapSamples = 100

	// MaxBootstrapSamples is the largest accepted number of bootstrap samples.
	MaxBootstrapSamples = 10000
)

// ImputationConfig configures missing values imputation.
type ImputationConfig struct {
	Method            ImputationMethod `json:"method"`
	Columns           []string         `json:"columns"`
	PreserveStructure bool             `json:"preserve_structure"`
	GenerateReport    bool             `json:"generate_report"`
}

// OutliersConfig configures outliers detection and handling.
type OutliersConfig struct {
	DetectionMethod  DetectionMethod `json:"detection_method"`
	HandlingMethod   HandlingMethod  `json:"handling_method"`
	Columns          []string        `json:"columns"`
	Threshold        float64         `json:"threshold"`
	ReplacementValue string          `json:"replacement_value"`
}

// WeightsConfig configures survey weights. An empty Column means
// that the analysis is unweighted.
type WeightsConfig struct {
	Column        string        `json:"column"`
	Normalization Normalization `json:"normalization"`
}

// QualityChecks contains the data quality checks toggles.
type QualityChecks struct {
	CheckDuplicates bool `json:"check_duplicates"`
	ValidateTypes   bool `json:"validate_types"`
	CheckOutliers   bool `json:"check_outliers"`
	GenerateReport  bool `json:"generate_report"`
}

// Configuration is the whole pipeline configuration accumulated by
// the workflow stages. Slice fields have set semantics: the order is
// the selection order and there are no duplicates.
//
// Treat values of this type as immutable: use the configmodel package
// to derive modified copies.
type Configuration struct {
	Imputation        ImputationConfig   `json:"imputation"`
	Outliers          OutliersConfig     `json:"outliers"`
	Weights           WeightsConfig      `json:"weights"`
	EstimateColumns   []string           `json:"estimate_columns"`
	EstimationMethods []EstimationMethod `json:"estimation_methods"`
	ConfidenceLevel   float64            `json:"confidence_level"`
	BootstrapMethod   BootstrapMethod    `json:"bootstrap_method"`
	BootstrapSamples  int                `json:"bootstrap_samples"`
	QualityChecks     QualityChecks      `json:"quality_checks"`
}
