// Package admin implements the management API a test uses to register,
// inspect, and remove mocks: POST/GET/DELETE under /__mocks.
package admin
