// Package kernel holds the value objects shared by the courier, order and batch
// aggregates: identifiers, region ids, time-of-day windows, vehicle classes and
// order weights.
//
// Every value object validates itself on construction, so a value obtained from
// one of the New*/Parse* functions is always usable. Zero values are detected
// through Validate where it matters (UUID, TimeWindow, Weight).
package kernel
