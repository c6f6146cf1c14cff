// Package aggregates owns the transaction boundary for aggregate writes:
// the tx runner, the unit of work that makes staged writes durable, and
// the mapping from infrastructure failures to aggregate error codes.
package aggregates
