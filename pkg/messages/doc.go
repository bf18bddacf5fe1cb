// Package messages holds the localizable message catalogs used by the
// validation rules.
//
// A Catalog maps fixed keys (FieldIsRequired, NumberTooSmall, ...) to
// templates with positional placeholders. Format substitutes arguments left
// to right by position:
//
//	messages.Format("Current: {0}, Minimum: {1}", 3, 5) // "Current: 3, Minimum: 5"
//
// A Bundle groups catalogs per locale. LoadFS reads JSON, YAML or TOML files
// named after their locale; EmbeddedFS ships English, French and German.
package messages
