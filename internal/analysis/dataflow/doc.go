// Package dataflow runs lattice-typed analyses over a cfg graph until every
// flow point reaches a fixed point.
//
// An analysis is described by a Domain: an initial value, a transfer function
// applied at each flow point, a merge used where control flow joins, and an
// equality test that detects convergence. The Engine stores its results on
// the flow points under a typed cfg.Key, so several analyses can run over the
// same graph without interfering.
//
// Termination is guaranteed when the domain has finite height and its
// transfer and merge functions are monotone. The iteration cap only guards
// against domains that break this contract; hitting it is reported as
// ErrNoFixedPoint rather than a truncated result.
package dataflow
