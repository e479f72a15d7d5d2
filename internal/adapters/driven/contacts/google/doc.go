// Package google reads contacts from the Google People API.
//
// The store authenticates with a stored OAuth refresh token, pages through
// people/me/connections and maps each person to a domain.Contact. Requests
// are paced by a token-bucket limiter that also honours 429 backoff.
package google
