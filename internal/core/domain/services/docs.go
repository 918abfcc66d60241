// Package services provides the pure domain services of the assignment engine.
// None of them performs I/O; the command and query handlers load aggregates,
// call these services and persist whatever they mutated.
//
// The package includes:
//   - IntervalMatcher: decides whether delivery windows fit into working windows
//   - EligibilityFilter: selects the orders a courier can take, in ascending id order
//   - BatchManager: issues, completes and reconciles assignment batches
//   - PerformanceScorer: computes a courier's rating and earnings from finished work
package services
