// Package middleware wraps session stores with cross-cutting behavior such
// as encryption at rest.
package middleware
