// Package http exposes a Player over a JSON HTTP API with a per-session
// Server-Sent Events stream of renderer effects.
package http
