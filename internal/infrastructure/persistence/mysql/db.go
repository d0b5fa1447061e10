package mysql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. database.driver选择方言:mysql(默认)或postgres
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. SQL日志写入slog,debug模式打印所有SQL
// 4. auto_migrate为true时迁移表结构并写入角色
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Database.PostgresDSN())
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(slogWriter{}, gormlogger.Config{
			SlowThreshold:             cfg.Database.SlowThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true, // 唯一索引冲突转换为gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	slog.Info("database connected",
		slog.String("driver", cfg.Database.Driver),
		slog.String("host", cfg.Database.Host),
		slog.String("dbname", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}
	return db, nil
}

// AutoMigrate 迁移表结构并写入角色
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&RoleModel{},
		&UserModel{},
		&CategoryModel{},
		&BookModel{},
		&BookCategoryModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
	if err != nil {
		return err
	}

	for _, r := range user.AllRoles {
		if err := db.Where(RoleModel{Name: string(r)}).FirstOrCreate(&RoleModel{}).Error; err != nil {
			return fmt.Errorf("写入角色%s失败: %w", r, err)
		}
	}
	return nil
}

// slogWriter 把GORM日志写入slog
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...interface{}) {
	slog.Info(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
