// Package swaggerkit serves the OpenAPI document of the JSON API and the Swagger UI over it
package swaggerkit

import (
	"net/http"

	phttp "reviewlens/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI is mounted
const DocsPath = "/api/docs"

// Mount the Swagger UI and JSON document if enabled; apiBase becomes the document's server url
func Mount(r phttp.Router, enabled bool, apiBase string) {
	if !enabled {
		return
	}
	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON(apiBase))
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("reviewlens"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
