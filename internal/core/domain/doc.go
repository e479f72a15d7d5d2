// Package domain holds roster's plain types: contacts, the stored profile
// photo reference, permission states, the acquisition request and result,
// and settings.
//
// It imports only the standard library. Every other roster package may
// depend on it; it depends on none of them.
package domain
