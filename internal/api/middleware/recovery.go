package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/studyplanner/planner/internal/api/response"
	"github.com/studyplanner/planner/internal/domain"
)

// Recovery middleware catches panics and returns a 500 error.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Printf("panic recovered: %v\n%s", err, debug.Stack())
				response.Error(w, domain.NewInternalError(nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
