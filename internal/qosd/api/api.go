// Package api 提供 qosd 的 HTTP 接口
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qosd/internal/qosd/config"
	"github.com/jimyag/qosd/internal/qosd/metrics"
	"github.com/jimyag/qosd/internal/qosd/notifier"
	"github.com/jimyag/qosd/pkg/ginx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type API struct {
	engine *gin.Engine
	server *http.Server

	qosSpecs   *QoSSpecs
	volumeType *VolumeType
}

func New(
	cfg *config.Config,
	logger zerolog.Logger,
	qosSpecsService QoSSpecsServiceInterface,
	volumeTypeService VolumeTypeServiceInterface,
	notifiers notifier.Source,
) (*API, error) {
	metrics.Register()

	engine := gin.New()
	// gin.Context 的 Value 查询转发给请求上下文，zerolog.Ctx(ctx) 才能拿到请求级 logger
	engine.ContextWithFallback = true
	engine.Use(
		gin.Recovery(),
		ginx.RequestID(),
		ginx.Logger(logger),
		recordMetrics(),
	)

	api := &API{
		engine:     engine,
		qosSpecs:   NewQoSSpecs(qosSpecsService, notifiers, cfg.MaxLimit, cfg.BaseURL),
		volumeType: NewVolumeType(volumeTypeService),
	}

	engine.GET("/healthz", ginx.Adapt2(func(*gin.Context) string { return "ok" }))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v2 := engine.Group("/v2/:project_id")
	api.qosSpecs.RegisterRoutes(v2)
	api.volumeType.RegisterRoutes(v2)

	api.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api, nil
}

// Handler 返回 HTTP handler
func (a *API) Handler() http.Handler {
	return a.engine
}

// Name 实现 grace.Grace 接口
func (a *API) Name() string {
	return "qosd API"
}

func (a *API) Run(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().
		Str("address", a.server.Addr).
		Msg("HTTP server listening")
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// recordMetrics 中间件，按路由模板记录请求数和耗时
func recordMetrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		metrics.RecordRequest(ctx.FullPath(), ctx.Request.Method, ctx.Writer.Status(), time.Since(start))
	}
}
