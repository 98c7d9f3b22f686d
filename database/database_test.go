package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volunteermatch/volunteer-server-go/config"
	"gorm.io/gorm"
)

type widget struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64"`
}

func initTestDB(t *testing.T) {
	err := InitDatabase(&config.Config{
		DBDriver:   config.DRIVER_SQLITE,
		SqlitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
}

func TestInitDatabaseUnsupported(t *testing.T) {
	err := InitDatabase(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestIsDuplicateSqlite(t *testing.T) {
	initTestDB(t)
	require.NoError(t, Migrate(&widget{}))

	require.NoError(t, DBConn.Create(&widget{Name: "spanner"}).Error)

	err := DBConn.Create(&widget{Name: "spanner"}).Error
	assert.Error(t, err)
	assert.True(t, IsDuplicate(err))

	err = DBConn.Create(&widget{Name: "hammer"}).Error
	assert.NoError(t, err)
	assert.False(t, IsDuplicate(err))
}

func TestIsDuplicateErrors(t *testing.T) {
	assert.False(t, IsDuplicate(nil))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicate(fmt.Errorf("create: %w", &mysql.MySQLError{Number: MYSQL_DUPLICATE_ENTRY, Message: "Duplicate entry"})))
	assert.False(t, IsDuplicate(&mysql.MySQLError{Number: 1045, Message: "Access denied"}))
	assert.False(t, IsDuplicate(errors.New("connection refused")))
}

func TestIsNotFound(t *testing.T) {
	initTestDB(t)
	require.NoError(t, Migrate(&widget{}))

	var w widget
	err := DBConn.First(&w, 12345).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}
