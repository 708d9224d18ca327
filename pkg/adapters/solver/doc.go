/*
Package solver connects playback to the external solver service.

Client speaks the service's two JSON endpoints and checks every response
against an embedded JSON schema before decoding it. Static replays a saved
response for offline use.
*/
package solver
