package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// JSONBodyMiddleware treats POST bodies sent without a Content-Type as JSON
// so that BindBody decodes them.
func JSONBodyMiddleware(e *core.RequestEvent) error {
	if e.Request.Method == http.MethodPost && e.Request.Header.Get("Content-Type") == "" {
		e.Request.Header.Set("Content-Type", "application/json")
	}
	return e.Next()
}
