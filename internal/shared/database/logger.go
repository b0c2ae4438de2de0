package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/histolook/go-api-server/internal/config"
	"github.com/histolook/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts slog for GORM. Queries are logged through the
// request-scoped logger so they carry request_id.
type GormLogger struct {
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	HideSqlInLog         bool
	LogLevel             gormlogger.LogLevel
}

// newLogger creates a new GORM logger with slog
func newLogger(cfg *config.Config) gormlogger.Interface {
	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	return &GormLogger{
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,               // not logging db level not found
		HideSqlInLog:         cfg.IsProduction(), // Hide query parameters in production
		LogLevel:             logLevel,
	}
}

// LogMode sets the log level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		logger.FromContext(ctx).InfoContext(ctx, fmt.Sprintf(msg, data...), "component", "gorm")
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		logger.FromContext(ctx).WarnContext(ctx, fmt.Sprintf(msg, data...), "component", "gorm")
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		logger.FromContext(ctx).ErrorContext(ctx, fmt.Sprintf(msg, data...), "component", "gorm")
	}
}

// Trace logs SQL queries with timing information
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	log := logger.FromContext(ctx).With("component", "gorm")
	elapsed := time.Since(begin)
	sql, rows := fc()

	// unique 위반은 서비스에서 도메인 에러로 변환하므로 warn 으로 남긴다
	switch {
	case err != nil && errors.Is(err, gorm.ErrDuplicatedKey) && l.LogLevel >= gormlogger.Warn:
		log.WarnContext(ctx, "Unique constraint violated",
			"elapsed", elapsed.String(),
			"sql", l.sqlForLog(sql),
		)

	case err != nil && l.LogLevel >= gormlogger.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFound):
		log.ErrorContext(ctx, "Database query error",
			"error", err,
			"elapsed", elapsed.String(),
			"rows", rows,
			"sql", l.sqlForLog(sql),
		)

	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= gormlogger.Warn:
		log.WarnContext(ctx, "Slow SQL query detected",
			"elapsed", elapsed.String(),
			"threshold", l.SlowThreshold.String(),
			"rows", rows,
			"sql", l.sqlForLog(sql),
		)

	case l.LogLevel >= gormlogger.Info:
		log.DebugContext(ctx, "SQL query executed",
			"elapsed", elapsed.String(),
			"rows", rows,
			"sql", l.sqlForLog(sql),
		)
	}
}

func (l *GormLogger) sqlForLog(sql string) string {
	if l.HideSqlInLog {
		return "[hidden]"
	}
	return sql
}
