package opportunity

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/database"
	"github.com/volunteermatch/volunteer-server-go/log"
	"github.com/volunteermatch/volunteer-server-go/organization"
	"github.com/volunteermatch/volunteer-server-go/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (Opportunity) TableName() string {
	return "opportunities"
}

type Opportunity struct {
	ID             uint64                     `json:"id" gorm:"primary_key"`
	Title          string                     `json:"title" gorm:"not null"`
	Description    string                     `json:"description"`
	RemoteOrOnline bool                       `json:"remote_or_online"`
	Category       string                     `json:"category" gorm:"index;size:191"`
	Dates          string                     `json:"dates"`
	Duration       string                     `json:"duration"`
	OrganizationID uint64                     `json:"organization_id" gorm:"index;not null"`
	Organization   *organization.Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func GetOpportunityById(id uint64) (Opportunity, bool) {
	var opp Opportunity

	err := database.DBConn.Preload("Organization").First(&opp, id).Error

	if err != nil {
		if !database.IsNotFound(err) {
			log.L().Error("Failed to fetch opportunity", zap.Uint64("id", id), zap.Error(err))
		}

		return opp, false
	}

	return opp, true
}

func listWhere(c *fiber.Ctx, scope func(db *gorm.DB) *gorm.DB) error {
	var opps []Opportunity

	db := database.DBConn.Preload("Organization").Order("id ASC")

	if scope != nil {
		db = scope(db)
	}

	if err := db.Find(&opps).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list opportunities")
	}

	if len(opps) > 0 {
		return c.JSON(opps)
	} else {
		// Force [] rather than null to be returned.
		return c.JSON(make([]Opportunity, 0))
	}
}

// Home is the logged-in landing feed: every opportunity.
//
// @Summary Home feed
// @Tags opportunity
// @Router /home [get]
func Home(c *fiber.Ctx) error {
	return listWhere(c, nil)
}

// List returns opportunities, optionally filtered by ?category= and ?organization_id=.
//
// @Summary List opportunities
// @Tags opportunity
// @Router /opportunities [get]
func List(c *fiber.Ctx) error {
	category := c.Query("category")
	orgid := c.Query("organization_id")

	var oid uint64

	if orgid != "" {
		var err error
		oid, err = strconv.ParseUint(orgid, 10, 64)

		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid organization_id")
		}
	}

	return listWhere(c, func(db *gorm.DB) *gorm.DB {
		if category != "" {
			db = db.Where("category = ?", category)
		}

		if oid > 0 {
			db = db.Where("organization_id = ?", oid)
		}

		return db
	})
}

// ListForOrganization returns the opportunities belonging to one organization.
//
// @Summary List an organization's opportunities
// @Tags organization
// @Router /organization/{id}/opportunities [get]
func ListForOrganization(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Organization not found")
	if err != nil {
		return err
	}

	exists, err := organization.Exists(database.DBConn, id)

	if err != nil {
		log.L().Error("Failed to check organization", zap.Uint64("id", id), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check organization")
	} else if !exists {
		return fiber.NewError(fiber.StatusNotFound, "Organization not found")
	}

	return listWhere(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", id)
	})
}

type CreateRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description"`
	RemoteOrOnline bool   `json:"remote_or_online"`
	Category       string `json:"category"`
	Dates          string `json:"dates"`
	Duration       string `json:"duration"`
	OrganizationID uint64 `json:"organization_id" validate:"required"`
}

// Create adds an opportunity.  Any failure, including an unknown organization, is reported as a 400.
//
// @Summary Create an opportunity
// @Tags opportunity
// @Router /opportunities [post]
func Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Opportunity")
	}

	req.Title = utils.TidyString(req.Title)

	if err := utils.ValidateStruct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Opportunity")
	}

	org, found := organization.GetOrganizationById(req.OrganizationID)
	if !found {
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Opportunity")
	}

	opp := Opportunity{
		Title:          req.Title,
		Description:    req.Description,
		RemoteOrOnline: req.RemoteOrOnline,
		Category:       req.Category,
		Dates:          req.Dates,
		Duration:       req.Duration,
		OrganizationID: req.OrganizationID,
	}

	if err := database.DBConn.Omit(clause.Associations).Create(&opp).Error; err != nil {
		log.L().Warn("Failed to create opportunity", zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, "Could not create Opportunity")
	}

	opp.Organization = &org

	return c.Status(fiber.StatusCreated).JSON(opp)
}

func Single(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Opportunity not found")
	if err != nil {
		return err
	}

	opp, found := GetOpportunityById(id)

	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Opportunity not found")
	}

	return c.JSON(opp)
}

// Update applies every field in the body.  The id can't be changed and the organization must exist.
//
// @Summary Update an opportunity
// @Tags opportunity
// @Router /opportunities/{id} [patch]
func Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Opportunity not found")
	if err != nil {
		return err
	}

	opp, found := GetOpportunityById(id)

	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Opportunity not found")
	}

	if err := c.BodyParser(&opp); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	opp.ID = id
	opp.Organization = nil
	opp.Title = utils.TidyString(opp.Title)

	if opp.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}

	db := database.DBConn

	exists, err := organization.Exists(db, opp.OrganizationID)

	if err != nil {
		log.L().Error("Failed to check organization", zap.Uint64("id", opp.OrganizationID), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check organization")
	} else if !exists {
		return fiber.NewError(fiber.StatusBadRequest, "Organization not found")
	}

	if err := db.Omit(clause.Associations).Save(&opp).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update opportunity")
	}

	opp, _ = GetOpportunityById(id)

	return c.JSON(opp)
}

// Delete removes an opportunity.
//
// @Summary Delete an opportunity
// @Tags opportunity
// @Router /opportunities/{id} [delete]
func Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "Opportunity not found")
	if err != nil {
		return err
	}

	result := database.DBConn.Delete(&Opportunity{}, id)

	if result.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete opportunity")
	}

	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Opportunity not found")
	}

	return c.JSON(fiber.Map{"message": "Successfully deleted Oppurtunity"})
}
