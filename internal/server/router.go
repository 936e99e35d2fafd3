// Package server assembles the HTTP surface of the gateway.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chagual/internal/config"
	"chagual/internal/domain/audio"
	"chagual/internal/domain/control"
	"chagual/internal/domain/ficha"
	"chagual/internal/domain/foto"
	"chagual/internal/gateway"
	"chagual/internal/media"
	"chagual/internal/middleware"
	"chagual/internal/storage"
)

const healthMode = "Procedimiento almacenado - Proyecto CHAGUAL"

// NewRouter wires middleware and every domain onto a gin engine. store may be
// nil when no media strategy uses object storage.
func NewRouter(cfg *config.Config, gw *gateway.Gateway, store storage.ObjectStore) (*gin.Engine, error) {
	fotoStrategy, err := media.ParseStrategy(cfg.Media.FotoStrategy)
	if err != nil {
		return nil, fmt.Errorf("foto: %w", err)
	}
	audioStrategy, err := media.ParseStrategy(cfg.Media.AudioStrategy)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	if store == nil && (fotoStrategy == media.ObjectStore || audioStrategy == media.ObjectStore) {
		return nil, fmt.Errorf("object_store strategy needs a configured store")
	}

	r := gin.New()
	// Recovery runs innermost so panics still reach the access log and metrics.
	r.Use(middleware.RequestID(), middleware.AccessLog())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.Recovery())
	if cfg.CORS.Enabled {
		r.Use(middleware.CORS(cfg.CORS))
	}
	r.Use(middleware.BodyLimit(cfg.Media.MaxBytes))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Online", "mode": healthMode})
	})
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if local := localStore(store); local != nil {
		r.Static(local.URLPrefix(), local.Dir())
	}

	maxBytes := cfg.Media.MaxBytes
	control.RegisterRoutes(r, control.NewHandler(control.NewRepository(gw)))
	ficha.RegisterRoutes(r, ficha.NewHandler(ficha.NewService(ficha.NewRepository(gw), audioStrategy, store, maxBytes)))
	foto.RegisterRoutes(r, foto.NewHandler(foto.NewService(foto.NewRepository(gw), fotoStrategy, store, maxBytes)))
	audio.RegisterRoutes(r, audio.NewHandler(audio.NewService(audio.NewRepository(gw), audioStrategy, store, maxBytes)))

	return r, nil
}

func localStore(s storage.ObjectStore) *storage.LocalStore {
	for s != nil {
		switch v := s.(type) {
		case *storage.LocalStore:
			return v
		case interface{ Unwrap() storage.ObjectStore }:
			s = v.Unwrap()
		default:
			return nil
		}
	}
	return nil
}
