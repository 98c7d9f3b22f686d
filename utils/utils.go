package utils

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// We have constants here rather than in the packages you might expect to avoid import loops.
const SESSION_VOLUNTEER_ID = "volunteer_id"

const LOCALS_VOLUNTEER_ID = "volunteerid"

const ROUTE_SIGNUP = "/signup"
const ROUTE_LOGIN = "/login"
const ROUTE_CHECK_SESSION = "/check_session"

var validate = validator.New()

// ValidateStruct runs the `validate` struct tags on s.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ParseID reads the :id route parameter.  Anything that isn't a positive integer is treated as a missing record, in
// the same way that an integer route converter would fail to match.
func ParseID(c *fiber.Ctx, notFound string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)

	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, notFound)
	}

	return id, nil
}

// NormalisePath strips trailing slashes and case, as the router does, so that /Login/ and /login are the same route.
func NormalisePath(path string) string {
	if path == "/" {
		return path
	}

	trimmed := strings.ToLower(strings.TrimRight(path, "/"))

	if trimmed == "" {
		return "/"
	}

	return trimmed
}

// TidyString trims whitespace from user-supplied text.
func TidyString(s string) string {
	return strings.TrimSpace(s)
}
