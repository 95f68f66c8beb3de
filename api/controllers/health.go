package controllers

import (
	"context"
	"net/http"

	"github.com/koussaybh/patisserie-storefront/api/responses"
	"github.com/koussaybh/patisserie-storefront/pkg/config"
	"github.com/koussaybh/patisserie-storefront/pkg/logger"
)

const envHeader = "X-Patisserie-Env"

type backendPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, backend backendPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if backend != nil {
			if err := backend.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
