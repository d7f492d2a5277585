// Package client is the embeddable permission checker consuming services
// use to guard their own endpoints. It answers empty-scope grants straight
// from the caller's token claims when they list the permission, and caches
// every other decision from the access service for a short TTL, so a burst
// of requests for the same user and scope costs one remote round trip.
package client
