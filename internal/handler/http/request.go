package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/worktrack/worktrack-backend-go/internal/domain/auth"
	"github.com/worktrack/worktrack-backend-go/internal/domain/user"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/middleware"
	"github.com/worktrack/worktrack-backend-go/internal/handler/http/response"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/pagination"
)

// decodeJSON reads the request body into v. It writes a 400 and returns
// false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// actorFrom returns the authenticated caller or writes a 401.
func actorFrom(w http.ResponseWriter, r *http.Request) (user.Actor, bool) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return user.Actor{}, false
	}
	return actor, true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns 0 for a missing or non-numeric parameter.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func pageParams(r *http.Request) pagination.Params {
	return pagination.Params{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
}
