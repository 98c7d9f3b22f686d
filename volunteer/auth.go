package volunteer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/session"
	"github.com/volunteermatch/volunteer-server-go/utils"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the credentials and binds the session to the volunteer.
//
// @Summary Log in
// @Tags session
// @Router /login [post]
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var v Volunteer
	err := database.DBConn.Where("username = ?", utils.TidyString(req.Username)).First(&v).Error

	if database.IsNotFound(err) {
		return fiber.NewError(fiber.StatusNotFound, "Volunteer not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch volunteer")
	}

	if !v.Authenticate(req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid password")
	}

	if err := session.SetVolunteerID(c, v.ID); err != nil {
		log.L().Error("Failed to save session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save session")
	}

	return c.JSON(v)
}

// Logout clears the volunteer from the session.
//
// @Summary Log out
// @Tags session
// @Router /logout [delete]
func Logout(c *fiber.Ctx) error {
	if err := session.ClearVolunteerID(c); err != nil {
		log.L().Error("Failed to clear session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear session")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CheckSession returns the logged-in volunteer.  A session that refers to a volunteer who has since been deleted is
// treated as logged out.
//
// @Summary Current volunteer
// @Tags session
// @Router /check_session [get]
func CheckSession(c *fiber.Ctx) error {
	if v, found := GetVolunteerById(session.WhoAmI(c)); found {
		return c.JSON(v)
	}

	return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Must login")
}
