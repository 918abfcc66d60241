// Package courier provides the Courier aggregate root: a courier's vehicle class,
// the regions it serves, its working-hour windows and a weak reference to the
// assignment batch it is currently working on.
//
// Key business rules:
//   - Courier ids are positive integers supplied by the client
//   - The vehicle class must be one of foot, bike or car
//   - Regions and working windows are non-empty; regions are kept deduplicated and sorted
//   - The current batch reference is only a hint; callers verify that the batch exists
package courier
