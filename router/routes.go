package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/opportunity"
	"github.com/volunteermatch/volunteer-server-go/organization"
	"github.com/volunteermatch/volunteer-server-go/volunteer"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/home", opportunity.Home)

	app.Post("/login", volunteer.Login)
	app.Delete("/logout", volunteer.Logout)
	app.Get("/check_session", volunteer.CheckSession)
	app.Post("/signup", volunteer.Signup)

	app.Get("/opportunities", opportunity.List)
	app.Post("/opportunities", opportunity.Create)
	app.Get("/opportunities/:id", opportunity.Single)
	app.Patch("/opportunities/:id", opportunity.Update)
	app.Delete("/opportunities/:id", opportunity.Delete)

	app.Get("/profile", volunteer.GetProfile)
	app.Patch("/profile", volunteer.UpdateProfile)
	app.Delete("/profile", volunteer.DeleteProfile)
	app.Get("/profile/:id", volunteer.GetVolunteer)

	app.Get("/organization", organization.List)
	app.Post("/organization", organization.Create)
	app.Get("/organization/:id", organization.Single)
	app.Patch("/organization/:id", organization.Update)
	app.Delete("/organization/:id", organization.Delete)
	app.Get("/organization/:id/opportunities", opportunity.ListForOrganization)
}

// Models lists everything that AutoMigrate manages.
func Models() []interface{} {
	return []interface{}{
		&volunteer.Volunteer{},
		&organization.Organization{},
		&opportunity.Opportunity{},
	}
}
