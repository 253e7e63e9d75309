// Package connectors provides implementations of the Connector interface
// for the places a catalog can live. Each connector knows how to fetch one
// sheet from a specific source kind (local file, web URL, GitHub, Drive).
//
// Connectors are registered with the Registry at startup.
package connectors
