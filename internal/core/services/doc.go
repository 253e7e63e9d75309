// Package services implements the driving ports.
//
// Services orchestrate the driven ports (connectors, parsers, config,
// file watching) around the pure engine package. They hold the only
// mutable application state: the current catalog.
package services
