// Package api holds the OpenAPI contract of the HTTP interface.
package api

import _ "embed"

// Spec is the OpenAPI 3 document in YAML.
//
//go:embed openapi.yaml
var Spec []byte
