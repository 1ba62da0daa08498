package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger é qualquer dependência que responde a um ping (Postgres, ClickHouse)
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(dependencies map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(dependencies))
		for name, dependency := range dependencies {
			if err := dependency.Ping(ctx); err != nil {
				logrus.WithError(err).WithField("dependency", name).Warn("healthcheck: dependency unavailable")
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		err := json.NewEncoder(w).Encode(map[string]any{
			"time":         time.Now().Format(time.RFC3339),
			"dependencies": checks,
		})
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
