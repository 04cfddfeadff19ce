// Package model contains the shared interfaces and data structures.
//
// # Criteria for adding a type to this package
//
// This package should contain two kinds of types:
//
// 1. interfaces shared by several packages within the codebase (e.g.,
// the apex/log compatible [Logger]);
//
// 2. data shared across packages (e.g., the [DatasetSchema] returned
// by the backend after an upload and the [Configuration] aggregate that
// the workflow stages mutate).
//
// In general, this package should not contain logic, unless this logic
// is strictly related to data structures (e.g., checking whether an enum
// value is valid) and we cannot implement it elsewhere.
//
// # Content of this package
//
// - config.go: the pipeline configuration aggregate and its enums;
//
// - logger.go: generic definition of an apex/log compatible logger;
//
// - result.go: the processing result returned by the backend;
//
// - schema.go: the dataset description returned after upload.
package model
