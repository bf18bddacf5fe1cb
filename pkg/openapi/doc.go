// Package openapi derives field schemas from the request body of an OpenAPI
// 3 operation using kin-openapi. Documents are loaded from memory only; no
// reference is fetched over the network.
package openapi
