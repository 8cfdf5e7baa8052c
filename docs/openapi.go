package docs

import _ "embed"

// OpenAPI is the standalone OpenAPI 3 document, embedded so serving it does
// not depend on the process working directory.
//
//go:embed openapi.yaml
var OpenAPI []byte
