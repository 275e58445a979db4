// Package repository 提供数据持久化层实现
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // 纯 Go SQLite 驱动，不需要 CGO
)

// MemoryDSN 内存数据库
const MemoryDSN = ":memory:"

// Repository 数据库仓库
type Repository struct {
	db *gorm.DB
}

type options struct {
	synchronous bool
}

// Option 配置 Repository
type Option func(*options)

// WithSynchronous 为 false 时关闭 sqlite 的同步写盘
func WithSynchronous(synchronous bool) Option {
	return func(o *options) {
		o.synchronous = synchronous
	}
}

// New 创建新的 Repository 实例
// dbPath 为 ":memory:" 时使用内存数据库
func New(dbPath string, opts ...Option) (*Repository, error) {
	o := &options{synchronous: true}
	for _, opt := range opts {
		opt(o)
	}

	if dbPath != MemoryDSN {
		// 确保数据库目录存在
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// 直接使用 database/sql + modernc.org/sqlite 创建连接，然后传递给 GORM
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// 内存数据库每个连接是独立的库，PRAGMA 也只对单个连接生效
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dbPath,
		Conn:       sqlDB,
	}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open gorm database: %w", err)
	}

	if !o.synchronous {
		if err := db.Exec("PRAGMA synchronous = OFF").Error; err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("set synchronous: %w", err)
		}
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.QoSSpecs{},
		&model.QoSSpecsKey{},
		&model.VolumeType{},
		&model.Notification{},
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	if err := createIndexes(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create indexes: %w", err)
	}

	return &Repository{db: db}, nil
}

// DB 返回 GORM 数据库实例（用于 Repository 实现）
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// WithContext 返回带上下文的数据库实例
func (r *Repository) WithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Transaction 在事务中执行 fn
// fn 内只能使用 tx，连接池只有一个连接
func (r *Repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Close 关闭数据库连接
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// createIndexes 创建额外的索引和唯一约束
func createIndexes(db *gorm.DB) error {
	// 未删除的 QoS 规格名称唯一
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_qos_specs_name_unique
		ON qos_specs(name)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return fmt.Errorf("create unique index on qos_specs: %w", err)
	}

	// 同一规格的同一个 key 只能有一个值
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_qos_specs_keys_unique
		ON qos_specs_keys(qos_specs_id, spec_key)
	`).Error; err != nil {
		return fmt.Errorf("create unique index on qos_specs_keys: %w", err)
	}

	// 未删除的卷类型名称唯一
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_volume_types_name_unique
		ON volume_types(name)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		return fmt.Errorf("create unique index on volume_types: %w", err)
	}

	return nil
}
