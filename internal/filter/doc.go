// Package filter narrows a fetched camera collection by location, status
// and free-text search. It is pure: no I/O, no shared state, one linear scan.
package filter
