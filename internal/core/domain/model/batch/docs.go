// Package batch provides the Batch aggregate: the set of orders handed to one
// courier by a single assignment. A batch remembers the vehicle class the courier
// had when it was issued, so later profile changes do not alter its payout.
//
// Orders move from the not-started set to the finished set as they are completed,
// or leave the not-started set when a profile change makes them ineligible.
// A batch with an empty not-started set is drained. Batches are never deleted.
package batch
