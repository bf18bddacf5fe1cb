// Package schema defines the field configuration shared between the binding
// engine and the rendering layer: FieldSchema, the Validator union (Named,
// Inline, List), the RuleFunc contract and the observable ErrorList.
//
// A FieldSchema is owned by the caller. Binding it to a field runtime
// allocates Errors and resets ShowHelp; afterwards the runtime is the only
// writer of Errors and keeps the same ErrorList instance across validations.
package schema
