// Package registry stores active mocks and serves FindFor, the read path
// that evaluates an incoming request against every stored mock and bumps
// the winner's call counter. See Registry for the concurrency contract.
package registry
