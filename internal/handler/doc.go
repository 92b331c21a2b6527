// Package handler serves the resolved environment configuration to front-ends
// that fetch it at runtime instead of baking it into their bundle.
package handler
