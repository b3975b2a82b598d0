package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/domain"
)

type contextKey string

const (
	// LocationKey is the context key for the client's time zone.
	LocationKey contextKey = "location"
	// TimezoneHeader is the HTTP header carrying an IANA time zone name.
	TimezoneHeader = "X-Timezone"
)

// Timezone middleware resolves the X-Timezone header into the location used
// to interpret task dates. Requests without the header use def.
func Timezone(def *time.Location) func(http.Handler) http.Handler {
	if def == nil {
		def = time.Local
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := def
			if name := r.Header.Get(TimezoneHeader); name != "" {
				l, err := time.LoadLocation(name)
				if err != nil {
					response.Error(w, domain.NewValidationError([]string{
						"Invalid " + TimezoneHeader + " header: unknown time zone " + name,
					}))
					return
				}
				loc = l
			}

			ctx := context.WithValue(r.Context(), LocationKey, loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLocation retrieves the request's location from context.
func GetLocation(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(LocationKey).(*time.Location); ok {
		return loc
	}
	return time.Local
}
