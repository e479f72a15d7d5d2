// Package env reads ROSTER_* environment variables with caarlos0/env and
// applies them on top of file-based settings.
package env
