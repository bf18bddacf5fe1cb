// Package form binds a list of field schemas to one model and validates them
// together. Definitions can be authored as JSON or YAML:
//
//	options:
//	  validateAfterChanged: true
//	fields:
//	  - model: author.email
//	    label: E-mail
//	    validator: [required, email]
//	    required: true
package form
