// Package aggregates defines the failure vocabulary shared by aggregate
// write paths, persistence mapping and transport.
package aggregates
