package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/models"
)

func formatDate(user *models.User) any {
	if user.BornOn == nil {
		return nil
	}
	return user.BornOn.Format("2006-01-02")
}

// userView is the public projection. Private adds fields only the user
// themself may see.
func userView(user *models.User, private bool) fiber.Map {
	view := fiber.Map{
		"id":          user.ID,
		"fullname":    user.Fullname,
		"avatar_url":  user.AvatarURL,
		"born_on":     formatDate(user),
		"company":     user.Company,
		"designation": user.Designation,
		"startup_id":  user.StartupID,
	}
	if private {
		view["email"] = user.Email
		view["phone"] = user.Phone
		view["phone_verified"] = user.PhoneVerified
		view["pending_startup_id"] = user.PendingStartupID
	}
	return view
}

func contactView(contact *models.User) fiber.Map {
	return fiber.Map{
		"id":          contact.ID,
		"fullname":    contact.Fullname,
		"phone":       contact.Phone,
		"company":     contact.Company,
		"designation": contact.Designation,
		"avatar_url":  contact.AvatarURL,
	}
}

func startupView(startup *models.Startup) fiber.Map {
	founders := make([]fiber.Map, 0, len(startup.Founders))
	for i := range startup.Founders {
		founders = append(founders, userView(&startup.Founders[i], false))
	}
	return fiber.Map{
		"id":       startup.ID,
		"name":     startup.Name,
		"slug":     startup.Slug,
		"about":    startup.About,
		"founders": founders,
	}
}
