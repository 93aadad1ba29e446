package assistant

import "github.com/hyperjump/sahayak/internal/models"

var popularCategories = []models.Category{
	{ID: "plumber", DisplayName: "Plumbing", Icon: "🔧", Description: "Pipes, leaks, and water systems"},
	{ID: "tutor", DisplayName: "Coaching/Tutoring", Icon: "📚", Description: "IIT-JEE, NEET, school tuition"},
	{ID: "gym", DisplayName: "Fitness & Gyms", Icon: "💪", Description: "Gyms, yoga, and personal training"},
	{ID: "electrician", DisplayName: "Electrical", Icon: "⚡", Description: "Wiring and electrical work"},
	{ID: "repair", DisplayName: "Repairs", Icon: "🔨", Description: "AC, appliances, and maintenance"},
	{ID: "cleaner", DisplayName: "Cleaning", Icon: "🧹", Description: "House and office cleaning"},
	{ID: "mechanic", DisplayName: "Auto Repair", Icon: "🚗", Description: "Car and vehicle service"},
	{ID: "carpenter", DisplayName: "Carpentry", Icon: "🪚", Description: "Woodwork and furniture"},
	{ID: "painter", DisplayName: "Painting", Icon: "🎨", Description: "Interior and exterior painting"},
	{ID: "locksmith", DisplayName: "Locksmith", Icon: "🔐", Description: "Lock and security services"},
}

// PopularCategories returns the browsable service categories.
func PopularCategories() []models.Category {
	return append([]models.Category(nil), popularCategories...)
}
