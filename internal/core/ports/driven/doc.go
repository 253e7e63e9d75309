// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Connector: Fetches a raw sheet from one kind of source
//   - ConnectorRegistry: Selects the connector for a source reference
//   - SheetParser: Turns raw sheet bytes into rows
//   - ParserRegistry: Selects the parser for a MIME type
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FileWatcher: Change notification for local sources. Without it, live reload is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or parser package
package driven
