package controllers

import (
	"net/http"

	"github.com/angelmondragon/rentalhub-backend/api/responses"
)

// CurrentUser is a placeholder. The API has no authentication, so the caller
// is always anonymous.
func CurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"id": nil, "name": "anonymous", "authenticated": false})
	}
}
