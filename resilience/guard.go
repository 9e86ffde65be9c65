package resilience

import (
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Guard is the crash guard: it converts otherwise-uncaught panics into a
// logged diagnostic plus a generic user-facing warning, so a bug in one
// handler never takes the process down.
type Guard struct {
	logger   zerolog.Logger
	notifier Notifier
}

// NewGuard creates a crash guard. The notifier may be nil.
func NewGuard(logger zerolog.Logger, notifier Notifier) *Guard {
	return &Guard{logger: logger, notifier: notifier}
}

// Protect runs fn and recovers any panic, returning the recovered value
// (nil when fn completed normally).
func (g *Guard) Protect(fn func()) (recovered any) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
			g.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("recovered from panic")
			if g.notifier != nil {
				g.notifier.Warning(CrashNotice)
			}
		}
	}()
	fn()
	return nil
}

// Middleware adapts the guard to echo. A recovered handler panic answers
// with the sentinel body and a 500 status; unlike the transport, a crash is
// not disguised as success.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var err error
			if r := g.Protect(func() { err = next(c) }); r != nil {
				return c.JSON(http.StatusInternalServerError, map[string]any{
					"error":   true,
					"message": CrashNotice,
					"data":    map[string]any{},
				})
			}
			return err
		}
	}
}
