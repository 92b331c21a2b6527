// Package config provides the environment configuration consumed by the coffee
// shop front-end. Each deployment mode has an inlined preset; Load can overlay a
// trusted YAML, JSON or TOML file on top of it, keyed in snake_case or by the
// JSON field names; unknown keys are rejected. Every record handed out is
// validated and returned by value, so callers cannot mutate shared state.
package config
