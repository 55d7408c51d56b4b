// Package httputil holds the small response helpers shared by module handlers.
package httputil

import (
	"net/http"

	"github.com/Black-And-White-Club/timetrial-standings/pkg/apierror"
)

// PathsBody lists the routes available under a scope.
type PathsBody struct {
	Paths []string `json:"paths"`
}

// WriteJSON writes v with status 200.
func WriteJSON(w http.ResponseWriter, v any) {
	apierror.WriteJSON(w, http.StatusOK, v)
}

// PathsHandler answers unmatched requests under a scope with the routes the
// scope does serve.
func PathsHandler(paths ...string) http.HandlerFunc {
	body := PathsBody{Paths: paths}
	return func(w http.ResponseWriter, r *http.Request) {
		apierror.WriteJSON(w, http.StatusOK, body)
	}
}
