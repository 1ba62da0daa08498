package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/campaign-insights-api/pkg/metrics"
)

// Metrics registra contagem e duração das requisições. route deve ser o padrão da
// rota, não o caminho, para manter a cardinalidade baixa.
func Metrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(lrw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
