// Package parsers provides implementations of the SheetParser interface
// for the tabular formats a catalog can be stored in. Each parser knows
// how to turn one family of MIME types into ordered rows.
//
// Parsers are registered with the Registry at startup.
package parsers
