// Package spec embeds the OpenAPI description of the TravelVista API so the
// server can serve it at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
