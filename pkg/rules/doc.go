// Package rules provides the named validation rules and the Registry that
// resolves them. Every rule shares the RuleFunc signature from package
// schema, so custom validators compose with the built-ins.
//
// The built-in set covers required, number, integer, double, string, array,
// date, regexp, email, url, creditCard, alpha and alphaNumeric. Names with the
// "tag:" prefix run a github.com/go-playground/validator/v10 tag expression.
//
// Messages are resolved through the registry catalog when a rule runs:
//
//	reg := rules.NewRegistry(rules.WithLocale("fr"))
//	reg.SetCatalog(bundle.Catalog("fr"))
package rules
