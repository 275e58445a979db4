// Package config 提供 qosd 的配置加载
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AuthNoAuth 不做认证
	AuthNoAuth = "noauth"

	// NotificationLog 通知写入日志
	NotificationLog = "log"
	// NotificationOutbox 通知写入数据库 outbox 表
	NotificationOutbox = "outbox"
	// NotificationNoop 丢弃通知
	NotificationNoop = "noop"

	// DefaultMaxLimit 单页最多返回的记录数
	DefaultMaxLimit = 1000
)

type Config struct {
	// Address 是 HTTP 监听地址
	// 可以通过环境变量 QOSD_ADDRESS 配置
	Address string `mapstructure:"address" yaml:"address"`

	// DataDir 是 qosd 数据目录，默认数据库文件放在这里
	// 可以通过环境变量 QOSD_DATA_DIR 配置
	// 默认：~/.local/share/qosd
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// BaseURL 用于生成分页链接，为空时使用请求的 Host
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// DefaultVolumeType 启动时确保存在的卷类型，为空时不创建
	DefaultVolumeType string `mapstructure:"default_volume_type" yaml:"default_volume_type"`

	// MaxLimit 列表接口单页最多返回的记录数
	MaxLimit int `mapstructure:"max_limit" yaml:"max_limit"`

	// AuthStrategy 目前只支持 noauth
	AuthStrategy string `mapstructure:"auth_strategy" yaml:"auth_strategy"`

	// LogLevel 是 zerolog 日志级别
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Database     Database     `mapstructure:"database" yaml:"database"`
	Notification Notification `mapstructure:"notification" yaml:"notification"`
}

type Database struct {
	// Connection 是 sqlite 数据库路径，":memory:" 表示内存数据库
	Connection string `mapstructure:"connection" yaml:"connection"`
	// SQLiteSynchronous 为 false 时设置 PRAGMA synchronous=OFF
	SQLiteSynchronous bool `mapstructure:"sqlite_synchronous" yaml:"sqlite_synchronous"`
}

type Notification struct {
	// Driver 取值 log、outbox 或 noop
	Driver string `mapstructure:"driver" yaml:"driver"`
}

// New 使用环境变量和默认值创建配置
func New() (*Config, error) {
	dataDir := getDataDir()
	cfg := &Config{
		Address:           getAddress(),
		DataDir:           dataDir,
		BaseURL:           os.Getenv("QOSD_BASE_URL"),
		DefaultVolumeType: os.Getenv("QOSD_DEFAULT_VOLUME_TYPE"),
		MaxLimit:          getMaxLimit(),
		AuthStrategy:      AuthNoAuth,
		LogLevel:          getLogLevel(),
		Database: Database{
			Connection:        getConnection(dataDir),
			SQLiteSynchronous: true,
		},
		Notification: Notification{
			Driver: NotificationLog,
		},
	}
	return cfg, nil
}

// Load 读取配置文件，path 为空时只使用环境变量和默认值
// 优先级：QOSD_* 环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	base, err := New()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, base)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix("QOSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 只修改了 data_dir 时数据库跟着走
	// IsSet 对有默认值的键总是返回 true，这里只看配置文件和环境变量
	explicit := v.InConfig("database.connection") || os.Getenv("QOSD_DATABASE_CONNECTION") != ""
	if !explicit && cfg.DataDir != base.DataDir {
		cfg.Database.Connection = filepath.Join(cfg.DataDir, "qosd.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("address", cfg.Address)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("default_volume_type", cfg.DefaultVolumeType)
	v.SetDefault("max_limit", cfg.MaxLimit)
	v.SetDefault("auth_strategy", cfg.AuthStrategy)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("database.connection", cfg.Database.Connection)
	v.SetDefault("database.sqlite_synchronous", cfg.Database.SQLiteSynchronous)
	v.SetDefault("notification.driver", cfg.Notification.Driver)
}

// Validate 检查配置是否合法
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.Database.Connection == "" {
		return errors.New("database.connection must not be empty")
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be positive, got %d", c.MaxLimit)
	}
	if c.AuthStrategy != AuthNoAuth {
		return fmt.Errorf("unsupported auth_strategy %q", c.AuthStrategy)
	}
	switch c.Notification.Driver {
	case NotificationLog, NotificationOutbox, NotificationNoop:
	default:
		return fmt.Errorf("unsupported notification.driver %q", c.Notification.Driver)
	}
	return nil
}

// Dump 把配置渲染为 YAML
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// SetTestDefaults 设置测试用的默认值
// 内存数据库，不做认证，丢弃通知，状态目录指向 stateDir
func SetTestDefaults(cfg *Config, stateDir string) {
	cfg.Address = "127.0.0.1:0"
	cfg.DataDir = stateDir
	cfg.DefaultVolumeType = "fake_vol_type"
	cfg.MaxLimit = DefaultMaxLimit
	cfg.AuthStrategy = AuthNoAuth
	cfg.LogLevel = "debug"
	cfg.Database.Connection = ":memory:"
	cfg.Database.SQLiteSynchronous = false
	cfg.Notification.Driver = NotificationNoop
}

// getDataDir 获取数据目录，优先使用环境变量
func getDataDir() string {
	// 1. 优先使用环境变量 QOSD_DATA_DIR
	if dir := os.Getenv("QOSD_DATA_DIR"); dir != "" {
		return dir
	}

	// 2. 使用用户主目录下的 .local/share/qosd
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "qosd")
	}

	// 3. 如果无法获取主目录，使用当前目录下的 data
	return filepath.Join(".", "data")
}

// getAddress 获取绑定地址，优先使用环境变量 QOSD_ADDRESS
func getAddress() string {
	if addr := os.Getenv("QOSD_ADDRESS"); addr != "" {
		return addr
	}

	return "0.0.0.0:8776"
}

// getConnection 获取数据库路径，默认放在数据目录下
func getConnection(dataDir string) string {
	if conn := os.Getenv("QOSD_DATABASE_CONNECTION"); conn != "" {
		return conn
	}
	return filepath.Join(dataDir, "qosd.db")
}

func getMaxLimit() int {
	if raw := os.Getenv("QOSD_MAX_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxLimit
}

func getLogLevel() string {
	if level := os.Getenv("QOSD_LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}
