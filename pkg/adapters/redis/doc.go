// Package redis provides a Redis-backed session store and distributed locker
// so several athena replicas can share sessions.
package redis
