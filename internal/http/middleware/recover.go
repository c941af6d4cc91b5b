package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/pribylovaa/go-portfolio-showcase/internal/errors"
	logctx "github.com/pribylovaa/go-portfolio-showcase/pkg/log"
)

// Recover превращает panic обработчика в 500/internal.
// Если ответ уже начат, тело не дописывается: клиент получит обрезанный ответ.
// http.ErrAbortHandler пробрасывается дальше, сервер закроет соединение сам.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logctx.From(r.Context()).Error("panic_recovered",
					slog.String("route", routeOf(r)),
					slog.String("reason", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
				)

				if !rec.started() {
					apierrors.WriteError(rec, r, fmt.Errorf("panic: %v", v))
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
