package organization

import (
	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"mvdan.cc/xurls/v2"
)

func (Organization) TableName() string {
	return "organizations"
}

type Organization struct {
	ID       uint64 `json:"id" gorm:"primary_key"`
	Name     string `json:"name" gorm:"not null"`
	Website  string `json:"website"`
	Category string `json:"category" gorm:"index;size:191"`
}

var websiteRegexp = xurls.Relaxed()

// ValidWebsite accepts an empty website, or one which is entirely a single URL.
func ValidWebsite(website string) bool {
	if website == "" {
		return true
	}

	return websiteRegexp.FindString(website) == website
}

// Exists reports whether the organization is present.
func Exists(db *gorm.DB, id uint64) (bool, error) {
	var count int64

	if err := db.Model(&Organization{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func GetOrganizationById(id uint64) (Organization, bool) {
	var org Organization

	err := database.DBConn.First(&org, id).Error

	if err != nil {
		if !database.IsNotFound(err) {
			log.L().Error("Failed to fetch organization", zap.Uint64("id", id), zap.Error(err))
		}

		return org, false
	}

	return org, true
}

// List returns all organizations.
//
// @Summary List organizations
// @Tags organization
// @Router /organization [get]
func List(c *fiber.Ctx) error {
	var orgs []Organization

	db := database.DBConn

	if err := db.Order("id ASC").Find(&orgs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list organizations")
	}

	if len(orgs) > 0 {
		return c.JSON(orgs)
	} else {
		// Force [] rather than null to be returned.
		return c.JSON(make([]Organization, 0))
	}
}

type CreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Website  string `json:"website"`
	Category string `json:"category"`
}

// Create adds an organization.  Any failure is reported as a 400.
//
// @Summary Create an organization
// @Tags organization
// @Router /organization [post]
func Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Organization")
	}

	req.Name = utils.TidyString(req.Name)
	req.Website = utils.TidyString(req.Website)

	if err := utils.ValidateStruct(&req); err != nil || !ValidWebsite(req.Website) {
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Organization")
	}

	org := Organization{
		Name:     req.Name,
		Website:  req.Website,
		Category: req.Category,
	}

	if err := database.DBConn.Create(&org).Error; err != nil {
		log.L().Warn("Failed to create organization", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Organization")
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

func Single(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Organization not found")
	if err != nil {
		return err
	}

	org, found := GetOrganizationById(id)

	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Organization not found")
	}

	return c.JSON(org)
}

// Update applies every field in the body.  The id can't be changed.
//
// @Summary Update an organization
// @Tags organization
// @Router /organization/{id} [patch]
func Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Organization not found")
	if err != nil {
		return err
	}

	org, found := GetOrganizationById(id)

	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Organization not found")
	}

	if err := c.BodyParser(&org); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	org.ID = id
	org.Name = utils.TidyString(org.Name)
	org.Website = utils.TidyString(org.Website)

	if org.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	if !ValidWebsite(org.Website) {
		return fiber.NewError(fiber.StatusBadRequest, "website must be a URL")
	}

	if err := database.DBConn.Save(&org).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update organization")
	}

	return c.JSON(org)
}

// Delete removes an organization along with its opportunities.
//
// @Summary Delete an organization
// @Tags organization
// @Router /organization/{id} [delete]
func Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Organization not found")
	if err != nil {
		return err
	}

	var deleted int64

	err = database.DBConn.Transaction(func(tx *gorm.DB) error {
		// The opportunity package imports this one, so its table is named directly.
		if err := tx.Exec("DELETE FROM opportunities WHERE organization_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&Organization{}, id)
		deleted = result.RowsAffected
		return result.Error
	})

	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete organization")
	}

	if deleted == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Organization not found")
	}

	return c.Status(fiber.StatusNoContent).JSON(fiber.Map{"message": "Organization deleted successfully."})
}
