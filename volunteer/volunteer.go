package volunteer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/session"
	"github.com/volunteermatch/volunteer-server-go/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for new hashes.
var PasswordCost = bcrypt.DefaultCost

func (Volunteer) TableName() string {
	return "volunteers"
}

type Volunteer struct {
	ID           uint64 `json:"id" gorm:"primary_key"`
	Username     string `json:"username" gorm:"uniqueIndex;size:191;not null" validate:"required"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" validate:"omitempty,email"`
	PhoneNumber  string `json:"phone_number"`
	Interests    string `json:"interests"`
	Skills       string `json:"skills"`
	HoursWanted  int    `json:"hours_wanted" validate:"gte=0"`
	Zipcode      string `json:"zipcode"`
}

// SetPassword replaces the stored hash.
func (v *Volunteer) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}

	v.PasswordHash = string(hash)
	return nil
}

// Authenticate checks password against the stored hash.
func (v *Volunteer) Authenticate(password string) bool {
	if v.PasswordHash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)) == nil
}

// GetVolunteerById returns the volunteer, or false if there isn't one.
func GetVolunteerById(id uint64) (Volunteer, bool) {
	var v Volunteer

	if id == 0 {
		return v, false
	}

	err := database.DBConn.First(&v, id).Error

	if err != nil {
		if !database.IsNotFound(err) {
			log.L().Error("Failed to fetch volunteer", zap.Uint64("id", id), zap.Error(err))
		}

		return v, false
	}

	return v, true
}

type SignupRequest struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
	Interests   string `json:"interests"`
	Skills      string `json:"skills"`
	HoursWanted int    `json:"hours_wanted" validate:"gte=0"`
	Zipcode     string `json:"zipcode"`
}

// Signup creates a volunteer and logs them in.
//
// @Summary Create a volunteer account
// @Tags volunteer
// @Router /signup [post]
func Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Username = utils.TidyString(req.Username)

	if err := utils.ValidateStruct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "username and password are required")
	}

	v := Volunteer{
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Interests:   req.Interests,
		Skills:      req.Skills,
		HoursWanted: req.HoursWanted,
		Zipcode:     req.Zipcode,
	}

	if err := v.SetPassword(req.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid password")
	}

	db := database.DBConn
	err := db.Create(&v).Error

	if database.IsDuplicate(err) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "422 Unprocessable Entity")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create volunteer")
	}

	if err := session.SetVolunteerID(c, v.ID); err != nil {
		log.L().Error("Failed to save session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save session")
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

// GetProfile returns the logged-in volunteer.
func GetProfile(c *fiber.Ctx) error {
	v, found := GetVolunteerById(session.WhoAmI(c))

	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Volunteer not found")
	}

	return c.JSON(v)
}

func GetVolunteer(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Volunteer not found")
	if err != nil {
		return err
	}

	v, found := GetVolunteerById(id)

	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Volunteer not found")
	}

	return c.JSON(v)
}

// UpdateProfile applies every field in the body to the logged-in volunteer.  A password in the body is re-hashed.
func UpdateProfile(c *fiber.Ctx) error {
	myid := session.WhoAmI(c)

	v, found := GetVolunteerById(myid)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Volunteer not found")
	}

	if err := c.BodyParser(&v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var pw struct {
		Password *string `json:"password"`
	}

	if err := c.BodyParser(&pw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	v.ID = myid
	v.Username = utils.TidyString(v.Username)

	if err := utils.ValidateStruct(&v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid profile")
	}

	if pw.Password != nil {
		if *pw.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "password is required")
		}

		if err := v.SetPassword(*pw.Password); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid password")
		}
	}

	err := database.DBConn.Save(&v).Error

	if database.IsDuplicate(err) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "422 Unprocessable Entity")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update volunteer")
	}

	return c.JSON(v)
}

// DeleteProfile deletes the logged-in volunteer and logs the session out.
func DeleteProfile(c *fiber.Ctx) error {
	myid := session.WhoAmI(c)

	result := database.DBConn.Delete(&Volunteer{}, myid)

	if result.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete volunteer")
	}

	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Volunteer not found")
	}

	if err := session.ClearVolunteerID(c); err != nil {
		log.L().Error("Failed to clear session", zap.Error(err))
	}

	return c.Status(fiber.StatusNoContent).JSON(fiber.Map{"message": "Volunteer deleted successfully."})
}
