/*
Package render provides ports.Renderer implementations that do not draw anything themselves.

  - Recorder keeps the effects as data so they can be shipped over HTTP, SSE or MCP.
  - Board folds effects into a materialized view (labels, sizes, edges, selection, messages).
  - Multi fans a single stream of effects out to several renderers.

Style decoding turns the opaque style maps of a solution into typed values for
renderers that need colours and widths.
*/
package render
