package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/volunteermatch/volunteer-server-go/config"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/sentrylog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	logger2 "gorm.io/gorm/logger"
)

// MySQL's ER_DUP_ENTRY.
const MYSQL_DUPLICATE_ENTRY = 1062

var (
	DBConn *gorm.DB
	cfg    *config.Config
)

// InitDatabase opens the connection described by c and keeps c so that the ping middleware can reconnect.
func InitDatabase(c *config.Config) error {
	cfg = c

	var dialector gorm.Dialector

	switch c.DBDriver {
	case config.DRIVER_SQLITE:
		dialector = sqlite.Open(c.SqlitePath)
	case config.DRIVER_MYSQL:
		dialector = gormmysql.Open(c.MysqlDSN())
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}

	db, err := Open(dialector)
	if err != nil {
		return err
	}

	DBConn = db
	return nil
}

// Open opens a gorm connection with our logger and error translation.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: sentrylog.New(log.L(), sentrylog.Config{
			SlowThreshold:             200 * time.Millisecond,
			IgnoreRecordNotFoundError: true,
			LogLevel:                  logger2.Warn,
		}),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables for the given models.
func Migrate(models ...interface{}) error {
	if err := DBConn.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}

// IsDuplicate reports whether err is a unique constraint violation, whichever driver raised it.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == MYSQL_DUPLICATE_ENTRY
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsNotFound reports whether err means that no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
