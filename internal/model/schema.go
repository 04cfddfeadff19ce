package model

//
// Dataset schema
//

// DatasetSchema describes an uploaded dataset. The backend returns it
// inside the `summary` field of the /upload response.
//
// The ColumnNames order is the source column order and MUST be preserved
// by every consumer. DataTypes contains one free-form type tag per column
// (e.g., "int64", "float64", "object"). MissingValues lists the columns
// having at least one missing value.
type DatasetSchema struct {
	Rows          int               `json:"rows"`
	Columns       int               `json:"columns"`
	ColumnNames   []string          `json:"column_names"`
	DataTypes     map[string]string `json:"data_types"`
	MissingValues []string          `json:"missing_values"`
}

// Clone returns a deep copy of the schema.
func (s DatasetSchema) Clone() DatasetSchema {
	out := DatasetSchema{
		Rows:          s.Rows,
		Columns:       s.Columns,
		ColumnNames:   append([]string{}, s.ColumnNames...),
		DataTypes:     make(map[string]string, len(s.DataTypes)),
		MissingValues: append([]string{}, s.MissingValues...),
	}
	for k, v := range s.DataTypes {
		out.DataTypes[k] = v
	}
	return out
}
