// Package common contains shared constants and sentinel errors used across
// userauth components.
package common

// SessionCookieName is the cookie that carries the opaque session identifier
// between the browser and the HTTP adapter.
const SessionCookieName = "session_id"
