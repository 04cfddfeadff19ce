// Package schemacache holds the description of the last uploaded dataset.
//
// The cache is read-only until replaced wholesale by the next successful
// upload. All queries are derived from the stored schema and have no side
// effects. A Cache is not safe for concurrent use: the workflow orchestrator
// serializes access to it.
package schemacache

import (
	"strings"

	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/asdp-project/asdp-cli/internal/optional"
)

// Cache caches a [model.DatasetSchema]. The zero value is an empty cache.
type Cache struct {
	schema optional.Value[model.DatasetSchema]
}

// New creates a new empty [*Cache].
func New() *Cache {
	return &Cache{}
}

// Set replaces the cached schema. There is no partial merge: every
// field of the previous schema is forgotten.
func (c *Cache) Set(schema model.DatasetSchema) {
	c.schema = optional.Some(schema.Clone())
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.schema = optional.None[model.DatasetSchema]()
}

// IsEmpty returns true until the first call to Set and after Clear.
func (c *Cache) IsEmpty() bool {
	return c.schema.IsNone()
}

// Schema returns a copy of the cached schema, if any.
func (c *Cache) Schema() optional.Value[model.DatasetSchema] {
	if c.schema.IsNone() {
		return c.schema
	}
	return optional.Some(c.schema.Unwrap().Clone())
}

// ColumnNames returns the column names in source order.
func (c *Cache) ColumnNames() []string {
	if c.schema.IsNone() {
		return []string{}
	}
	return append([]string{}, c.schema.Unwrap().ColumnNames...)
}

// NumericColumns returns, in source order, the columns whose type tag
// contains "int" or "float". The match is a case-sensitive substring
// match, so "Int64" is not numeric while "uint8" and "float32" are.
func (c *Cache) NumericColumns() []string {
	out := []string{}
	if c.schema.IsNone() {
		return out
	}
	schema := c.schema.Unwrap()
	for _, name := range schema.ColumnNames {
		if IsNumericType(schema.DataTypes[name]) {
			out = append(out, name)
		}
	}
	return out
}

// HasColumn returns whether name is one of the dataset columns.
func (c *Cache) HasColumn(name string) bool {
	if c.schema.IsNone() {
		return false
	}
	for _, candidate := range c.schema.Unwrap().ColumnNames {
		if candidate == name {
			return true
		}
	}
	return false
}

// IsNumeric returns whether name is a dataset column with a numeric type tag.
func (c *Cache) IsNumeric(name string) bool {
	if !c.HasColumn(name) {
		return false
	}
	return IsNumericType(c.schema.Unwrap().DataTypes[name])
}

// IsNumericType returns whether the given type tag denotes a numeric column.
func IsNumericType(tag string) bool {
	return strings.Contains(tag, "float") || strings.Contains(tag, "int")
}
