package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/utils"
	"go.uber.org/zap"
)

const COOKIE_NAME = "session_id"

type Config struct {
	Expiration   time.Duration
	CookieSecure bool
	// Storage defaults to Fiber's in-memory storage.
	Storage fiber.Storage
}

var store *fibersession.Store

// Init creates the session store.  Sessions live server side; the cookie only carries the session id.
func Init(config Config) {
	store = fibersession.New(fibersession.Config{
		Expiration:     config.Expiration,
		Storage:        config.Storage,
		KeyLookup:      "cookie:" + COOKIE_NAME,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   config.CookieSecure,
		KeyGenerator:   uuid.NewString,
	})
}

// WhoAmI returns the id of the logged-in volunteer, or 0.
func WhoAmI(c *fiber.Ctx) uint64 {
	if id := CachedVolunteerID(c); id > 0 {
		return id
	}

	sess, err := store.Get(c)
	if err != nil {
		log.L().Warn("Failed to load session", zap.Error(err))
		return 0
	}

	return toID(sess.Get(utils.SESSION_VOLUNTEER_ID))
}

// CachedVolunteerID returns the id that the auth middleware found for this request, without touching the store.
func CachedVolunteerID(c *fiber.Ctx) uint64 {
	id, _ := c.Locals(utils.LOCALS_VOLUNTEER_ID).(uint64)
	return id
}

// SetVolunteerID binds the session to a volunteer.  The session id is regenerated so that an id issued before login
// can't be reused afterwards.
func SetVolunteerID(c *fiber.Ctx, id uint64) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}

	if !sess.Fresh() {
		if err := sess.Regenerate(); err != nil {
			return err
		}
	}

	sess.Set(utils.SESSION_VOLUNTEER_ID, id)

	if err := sess.Save(); err != nil {
		return err
	}

	c.Locals(utils.LOCALS_VOLUNTEER_ID, id)
	return nil
}

// ClearVolunteerID logs the session out.  The key is kept with a zero value rather than removed.
func ClearVolunteerID(c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}

	sess.Set(utils.SESSION_VOLUNTEER_ID, uint64(0))

	if err := sess.Save(); err != nil {
		return err
	}

	c.Locals(utils.LOCALS_VOLUNTEER_ID, uint64(0))
	return nil
}

func toID(v interface{}) uint64 {
	switch id := v.(type) {
	case uint64:
		return id
	case uint:
		return uint64(id)
	case int:
		if id > 0 {
			return uint64(id)
		}
	case int64:
		if id > 0 {
			return uint64(id)
		}
	}

	return 0
}
