// Package domain holds the symbol model, per-method facts, diagnostics and configuration
// shared by the engine, the adapters and the CLI.
package domain
