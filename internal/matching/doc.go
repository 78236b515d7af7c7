// Package matching implements the request matching engine: comparing a
// normalized request against a mock's requirements, scoring near misses when
// nothing matches outright, and picking a winner among several full matches.
package matching
