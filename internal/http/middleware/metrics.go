package middleware

import (
	"net/http"
	"time"

	"github.com/pribylovaa/go-portfolio-showcase/internal/metrics"
)

// Metrics пишет счётчик и длительность запроса с меткой шаблона маршрута chi.
// Незарегистрированные пути попадают под route="unmatched".
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			m.ObserveHTTP(r.Method, routeOf(r), rec.Status(), time.Since(start))
		})
	}
}
