package database

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPingApp() *fiber.App {
	app := fiber.New()
	app.Use(NewPingMiddleware(Config{}))

	app.Get("/widgets", func(c *fiber.Ctx) error {
		var count int64
		if err := DBConn.Model(&widget{}).Count(&count).Error; err != nil {
			return err
		}

		return c.JSON(fiber.Map{"count": count})
	})

	return app
}

func TestPingHealthy(t *testing.T) {
	initTestDB(t)
	require.NoError(t, Migrate(&widget{}))

	before := DBConn

	resp, err := getPingApp().Test(httptest.NewRequest("GET", "/widgets", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Same(t, before, DBConn)
}

func TestPingReconnects(t *testing.T) {
	initTestDB(t)
	require.NoError(t, Migrate(&widget{}))
	require.NoError(t, DBConn.Create(&widget{Name: "spanner"}).Error)

	before := DBConn
	db, err := DBConn.DB()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	resp, err := getPingApp().Test(httptest.NewRequest("GET", "/widgets", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// A new connection to the same database.
	assert.NotSame(t, before, DBConn)

	db, err = DBConn.DB()
	require.NoError(t, err)
	assert.NoError(t, db.Ping())

	var count int64
	require.NoError(t, DBConn.Model(&widget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPingWithoutConfig(t *testing.T) {
	initTestDB(t)

	saved := cfg
	cfg = nil
	t.Cleanup(func() { cfg = saved })

	db, err := DBConn.DB()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	resp, err := getPingApp().Test(httptest.NewRequest("GET", "/widgets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
