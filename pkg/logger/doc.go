// Package logger builds the structured slog logger used by the envconfig
// tooling. Production mode logs JSON, every other mode logs text, and each
// record carries the environment it was produced for.
package logger
