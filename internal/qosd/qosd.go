// Package qosd 提供 qosd 服务器的主入口和初始化逻辑
package qosd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jimmicro/grace"
	"github.com/jimyag/qosd/internal/qosd/api"
	"github.com/jimyag/qosd/internal/qosd/config"
	"github.com/jimyag/qosd/internal/qosd/notifier"
	"github.com/jimyag/qosd/internal/qosd/repository"
	"github.com/jimyag/qosd/internal/qosd/service"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg  *config.Config
	api  *api.API
	repo *repository.Repository
}

// Option 配置 Server
type Option func(*serverOptions)

type serverOptions struct {
	output io.Writer
	source notifier.Source
}

// WithOutput 设置日志输出，默认 os.Stdout
func WithOutput(w io.Writer) Option {
	return func(o *serverOptions) {
		o.output = w
	}
}

// WithNotifierSource 替换按配置创建的通知源
func WithNotifierSource(source notifier.Source) Option {
	return func(o *serverOptions) {
		o.source = source
	}
}

func New(cfg *config.Config, opts ...Option) (*Server, error) {
	o := &serverOptions{output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(o.output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	ctx := logger.WithContext(context.Background())

	// 1. 打开数据库
	repo, err := repository.New(cfg.Database.Connection, repository.WithSynchronous(cfg.Database.SQLiteSynchronous))
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	logger.Info().
		Str("connection", cfg.Database.Connection).
		Msg("Repository initialized")

	// 2. 创建服务
	qosSpecsService := service.NewQoSSpecsService(repo)
	volumeTypeService := service.NewVolumeTypeService(repo)

	// 2.1. 确保默认卷类型存在
	if cfg.DefaultVolumeType != "" {
		if _, err := volumeTypeService.EnsureDefault(ctx, cfg.DefaultVolumeType); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("ensure default volume type: %w", err)
		}
	}

	// 3. 创建通知源
	source := o.source
	if source == nil {
		driver, err := notifier.NewDriver(cfg.Notification.Driver, repo)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("create notification driver: %w", err)
		}
		source = notifier.NewHub(driver)
	}

	// 4. 创建 API
	apiInstance, err := api.New(cfg, logger, qosSpecsService, volumeTypeService, source)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	server := &Server{
		cfg:  cfg,
		api:  apiInstance,
		repo: repo,
	}
	return server, nil
}

// Handler 返回 HTTP handler，不启动监听
func (s *Server) Handler() http.Handler {
	return s.api.Handler()
}

func (s *Server) Run(ctx context.Context) error {
	// 使用 grace.Shepherd 管理服务生命周期
	services := []grace.Grace{
		s.api,
	}

	shepherd := grace.NewShepherd(
		services,
		grace.WithTimeout(30*time.Second),
		grace.WithLogger(&zerologLogger{}),
	)

	shepherd.Start(ctx)
	return s.repo.Close()
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.api.Shutdown(ctx)
	if cerr := s.repo.Close(); err == nil {
		err = cerr
	}
	return err
}

// Name 实现 grace.Grace 接口
func (s *Server) Name() string {
	return "qosd Server"
}

// zerologLogger 实现 grace.Logger 接口
type zerologLogger struct{}

func (l *zerologLogger) Info(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Info()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}

func (l *zerologLogger) Error(msg string, args ...interface{}) {
	logger := zerolog.DefaultContextLogger.Error()
	if len(args) > 0 {
		logger.Msgf(msg, args...)
	} else {
		logger.Msg(msg)
	}
}
