// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > Environment
// variables > YAML config > Defaults. It exposes strongly typed server, ship,
// grid and planner settings to the rest of the application.
package config
