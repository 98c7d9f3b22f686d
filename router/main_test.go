package router

import (
	"bytes"
	json2 "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volunteermatch/volunteer-server-go/config"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/session"
	"github.com/volunteermatch/volunteer-server-go/volunteer"
	"golang.org/x/crypto/bcrypt"
)

// getApp returns an app backed by a fresh SQLite database and session store.
func getApp(t *testing.T) *fiber.App {
	volunteer.PasswordCost = bcrypt.MinCost

	err := database.InitDatabase(&config.Config{
		DBDriver:   config.DRIVER_SQLITE,
		SqlitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate())

	t.Cleanup(func() {
		if db, err := database.DBConn.DB(); err == nil {
			db.Close()
		}
	})

	session.Init(session.Config{Expiration: time.Hour})

	return NewApp(Config{})
}

func rsp(response *http.Response) []byte {
	buf := new(strings.Builder)
	io.Copy(buf, response.Body)
	return []byte(buf.String())
}

func request(method string, path string, body string, cookies []*http.Cookie) *http.Request {
	var req *http.Request

	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	var result map[string]interface{}
	require.NoError(t, json2.Unmarshal(rsp(resp), &result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	var result []map[string]interface{}
	require.NoError(t, json2.Unmarshal(rsp(resp), &result))
	return result
}

// signup creates a volunteer and returns their id and session cookies.
func signup(t *testing.T, app *fiber.App, username string, password string) (uint64, []*http.Cookie) {
	body := fmt.Sprintf(`{"username":"%s","password":"%s","first_name":"Test","last_name":"User","email":"%s@test.com","hours_wanted":5,"zipcode":"10001"}`, username, password, username)
	resp := do(t, app, request("POST", "/signup", body, nil))
	require.Equal(t, 201, resp.StatusCode)

	result := decodeMap(t, resp)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	return uint64(result["id"].(float64)), cookies
}

func createOrganization(t *testing.T, app *fiber.App, cookies []*http.Cookie, name string) uint64 {
	body := fmt.Sprintf(`{"name":"%s","website":"https://example.org/%s","category":"Community"}`, name, name)
	resp := do(t, app, request("POST", "/organization", body, cookies))
	require.Equal(t, 201, resp.StatusCode)

	result := decodeMap(t, resp)
	return uint64(result["id"].(float64))
}

func createOpportunity(t *testing.T, app *fiber.App, cookies []*http.Cookie, title string, category string, orgID uint64) uint64 {
	body := fmt.Sprintf(`{"title":"%s","description":"Help out","remote_or_online":false,"category":"%s","dates":"Saturdays","duration":"3 hours","organization_id":%d}`, title, category, orgID)
	resp := do(t, app, request("POST", "/opportunities", body, cookies))
	require.Equal(t, 201, resp.StatusCode)

	result := decodeMap(t, resp)
	return uint64(result["id"].(float64))
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return fmt.Errorf("boom")
	})

	resp := do(t, app, httptest.NewRequest("GET", "/teapot", nil))
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", decodeMap(t, resp)["error"])

	resp = do(t, app, httptest.NewRequest("GET", "/plain", nil))
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "boom", decodeMap(t, resp)["error"])
}
