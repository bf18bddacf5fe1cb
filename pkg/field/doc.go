// Package field implements the field runtime: it binds a schema.FieldSchema
// to a caller owned model, exposes the bound value, detects value changes
// and runs the schema rules into the schema error list.
//
// A Field is not safe for concurrent use. Fields sharing a model should
// share an accessor.Hub so a write through one field re-syncs the others.
package field
