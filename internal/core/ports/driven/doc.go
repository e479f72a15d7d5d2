// Package driven lists what roster's services need from the outside world:
// durable key-value storage, permission decisions, contact sources, image
// acquisition and choice, and configuration. Adapters under
// internal/adapters/driven implement it.
//
// Only the domain package may be imported here.
package driven
