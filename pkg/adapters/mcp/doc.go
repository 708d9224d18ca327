// Package mcp exposes playback sessions as Model Context Protocol tools.
package mcp
