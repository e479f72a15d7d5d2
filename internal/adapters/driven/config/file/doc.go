// Package file persists roster's settings in ~/.roster/config.toml.
//
// Remembered permission decisions live there too, under [permissions].
package file
