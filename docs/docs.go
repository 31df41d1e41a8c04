// Package docs registers the API description served under /swagger/*.
//
// The document is api/openapi.yaml converted to JSON, so the UI and the request
// bindings in internal/generated/servers always describe the same contract.
package docs

import (
	"encoding/json"

	"restock/internal/generated/servers"

	"github.com/swaggo/swag"
)

type openAPIDoc struct{}

// ReadDoc implements swag.Swagger.
func (openAPIDoc) ReadDoc() string {
	doc, err := servers.GetSwagger()
	if err != nil {
		return "{}"
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func init() {
	swag.Register(swag.Name, openAPIDoc{})
}
