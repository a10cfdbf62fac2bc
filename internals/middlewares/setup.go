package middlewares

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"mwit_alumni_backend/internals/configs"
	helper "mwit_alumni_backend/internals/helpers"
	helperMetrics "mwit_alumni_backend/internals/helpers/metrics"
	"mwit_alumni_backend/internals/middlewares/logger"
)

const RequestTimeout = 5 * time.Second

// AppConfig is the fiber.Config used by main. X-Forwarded-For is honoured only
// from TRUSTED_PROXIES (comma separated IPs/CIDRs of the load balancer); with
// none set c.IP() is the socket peer.
func AppConfig() fiber.Config {
	return fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.FiberErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               8 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.GetEnvList("TRUSTED_PROXIES"),
	}
}

// SetupMiddlewares installs the global chain. Order matters: request id first
// so every later log line carries it.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RequestID(RequestTimeout))
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(helperMetrics.Middleware())
	app.Use(GlobalRateLimiter())
}
