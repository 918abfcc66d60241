// Package order provides the Order aggregate root.
//
// An order has a weight, a region and the windows in which it may be delivered.
// Its lifecycle is tracked by two optional fields: the batch that claimed it and
// the moment it was completed.
//
//	open      -> not completed
//	claimed   -> has a batch id
//	in flight -> claimed and open
//
// A completed order is never reopened or released.
package order
