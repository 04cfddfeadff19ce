package model

//
// Processing results
//

// ColumnEstimate contains the estimates computed for a single column.
type ColumnEstimate struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// ProcessingResult is the successful response of the /clean API.
//
// Completeness, OutlierPercentage and Consistency are percentages in
// the [0, 100] range. ProcessingTime is in seconds.
type ProcessingResult struct {
	RowsProcessed     int                       `json:"rows_processed"`
	OutliersDetected  int                       `json:"outliers_detected"`
	MissingImputed    int                       `json:"missing_imputed"`
	ProcessingTime    float64                   `json:"processing_time"`
	Completeness      float64                   `json:"completeness"`
	OutlierPercentage float64                   `json:"outlier_percentage"`
	Consistency       float64                   `json:"consistency"`
	Estimates         map[string]ColumnEstimate `json:"estimates"`
}
