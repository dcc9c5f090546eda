// Package driving declares what the CLI, TUI and MCP adapters may ask of the
// core: one interface per page or concern, implemented in core/services.
package driving
