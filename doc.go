// Package formbind binds declarative field schemas to a caller-owned data
// model. Each field reads and writes its value through a dotted model path,
// runs its named or inline rules and keeps an observable list of localized
// error messages.
//
// The building blocks live under pkg/: schema (field configuration), accessor
// (path access and write notification), rules (the validator registry),
// messages (localized catalogs), field (the per-field runtime), form
// (multi-field binding and definitions) and openapi (schemas derived from an
// OpenAPI request body). This package wires them together for the common
// cases.
package formbind
