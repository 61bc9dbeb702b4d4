// Package kernel contains shared value objects used across the case
// resolution domain: the UUID identity wrapper and the TrackNumber value
// object for reverse and exchange shipment tracking codes.
//
// All value objects are immutable and must be created through their
// constructor functions; zero values fail Validate.
package kernel
