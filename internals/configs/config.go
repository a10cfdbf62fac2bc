package configs

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret       string
	GoogleClientID  string
	SiteURL         string
	TurnstileSecret string
	AMQPURL         string
	AMQPExchange    string
	OSSPrefix       string

	StatsRecomputeCron string
	RunMigrations      bool

	AllowedEmailDomains []string
	AdminEmails         []string
	CorsOrigins         []string

	SessionTTL      time.Duration
	ContentCacheTTL time.Duration
	Location        *time.Location
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			slog.Warn("no .env file found, using system environment")
		} else {
			slog.Info(".env file loaded")
		}
	} else {
		slog.Info("running on Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	SiteURL = GetEnv("SITE_URL", "/")
	TurnstileSecret = GetEnv("TURNSTILE_SECRET_KEY")
	AMQPURL = GetEnv("AMQP_URL")
	AMQPExchange = GetEnv("AMQP_EXCHANGE", "mwit.alumni")
	OSSPrefix = GetEnv("ALI_OSS_PREFIX", "mwit-alumni")

	StatsRecomputeCron = GetEnv("STATS_RECOMPUTE_CRON", "30 2 * * *")
	RunMigrations = GetEnvBool("RUN_MIGRATIONS", true)

	AllowedEmailDomains = GetEnvList("ALLOWED_EMAIL_DOMAINS", "mwit.ac.th", "gmail.com")
	AdminEmails = GetEnvList("ADMIN_EMAILS")
	CorsOrigins = GetEnvList("CORS_ORIGINS", "http://localhost:3000", "http://localhost:5173")

	SessionTTL = time.Duration(GetEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour
	ContentCacheTTL = time.Duration(GetEnvInt("CONTENT_CACHE_TTL_SECONDS", 300)) * time.Second
	Location = LoadLocation(GetEnv("APP_TIMEZONE", "Asia/Bangkok"))

	if JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
	}
	if GoogleClientID == "" {
		slog.Error("GOOGLE_CLIENT_ID is not set")
	}
	if TurnstileSecret == "" {
		slog.Warn("TURNSTILE_SECRET_KEY is not set, captcha verification disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GetEnvList splits a comma separated value, falling back to def when unset.
func GetEnvList(key string, def ...string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	out := make([]string, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("unknown timezone, falling back to UTC+7", "tz", name, "err", err)
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

// AppLocation never returns nil, even before LoadEnv has run (tests).
func AppLocation() *time.Location {
	if Location == nil {
		return LoadLocation("Asia/Bangkok")
	}
	return Location
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		slog.InfoContext(ctx, "gorm", "msg", msg, "data", data)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		slog.WarnContext(ctx, "gorm", "msg", msg, "data", data)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		slog.ErrorContext(ctx, "gorm", "msg", msg, "data", data)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && !isNotFound(err):
		slog.ErrorContext(ctx, "sql error", "file", file, "err", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		slog.WarnContext(ctx, "slow sql", "file", file, "elapsed", elapsed, "rows", rows, "sql", sql)
	case l.LogLevel >= gormLogger.Info:
		slog.DebugContext(ctx, "sql", "file", file, "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gormLogger.ErrRecordNotFound)
}
