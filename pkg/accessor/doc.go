// Package accessor connects a field to its model. Reads and writes go through
// a custom getter/setter when the schema declares one and through a dotted
// path otherwise; a Resolver layers optional value transforms on top and
// notifies a Hub after path writes so other bindings can react.
package accessor
