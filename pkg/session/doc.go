/*
Package session serializes access to player sessions.

A Manager pairs a ports.SessionStore with per-session mutexes and, optionally,
a ports.DistributedLocker so replicas sharing a store never interleave two
step calls on the same session. It also tracks the "solving" status that
refuses steps while a solve request is outstanding.
*/
package session
