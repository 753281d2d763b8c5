package handlers

import (
	"net/http"
	"strconv"

	"github.com/mistlabs/gamestore/internal/api/middleware"
	"github.com/mistlabs/gamestore/internal/errors"
	"github.com/mistlabs/gamestore/internal/models"
	"github.com/mistlabs/gamestore/internal/utils/response"
)

// pathID parses the {id} path segment, writing a 400 response on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, errors.BadRequestError("Invalid id"))

		return 0, false
	}

	return id, true
}

// claimsFrom fetches the authenticated user's claims, writing a 401 response
// when the auth middleware did not run.
func claimsFrom(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, ok
}
