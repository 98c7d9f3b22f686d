package database

import (
	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/log"
	"go.uber.org/zap"
)

type Config struct {
}

func NewPingMiddleware(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db, err := DBConn.DB()

		if err == nil {
			// Ping the connection to make sure it's ok and re-establish if need be.  A dead pool otherwise fails
			// every request until restart.
			err = db.Ping()
		}

		if err != nil {
			log.L().Warn("Ping failed, reconnecting", zap.Error(err))

			if db != nil {
				db.Close()
			}

			if cfg == nil {
				return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
			}

			if err := InitDatabase(cfg); err != nil {
				log.L().Error("Reconnect failed", zap.Error(err))
				return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
			}

			db, _ := DBConn.DB()

			if err := db.Ping(); err != nil {
				log.L().Error("Reconnect failed", zap.Error(err))
				return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
			}
		}

		return c.Next()
	}
}
