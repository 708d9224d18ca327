/*
Package observability turns playback lifecycle events into logs and Prometheus metrics.

Everything here is a domain.LifecycleHooks value, so callers wire it through
the engine's WithLifecycleHooks option and combine several with ComposeHooks.
*/
package observability
