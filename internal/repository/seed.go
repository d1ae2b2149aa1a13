package repository

import (
	"fmt"

	"linkbio/internal/models"
)

// SeedDemoData loads the demo profiles so a fresh instance has something to
// show. Safe to skip; creation errors (e.g. a username already present) abort
// the seed.
func SeedDemoData(store Store) error {
	users := []models.User{
		{
			Username:     "johndoe",
			Name:         "John Doe",
			Bio:          "Digital Creator | Tech Enthusiast | Coffee Lover ☕",
			ProfileImage: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400",
			Theme:        "default",
		},
		{
			Username:     "janedoe",
			Name:         "Jane Doe",
			Bio:          "Designer & Photographer 📸",
			ProfileImage: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400",
			Theme:        "ocean",
		},
		{
			Username:     "alexsmith",
			Name:         "Alex Smith",
			Bio:          "Music Producer 🎵 | Content Creator",
			ProfileImage: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400",
			Theme:        "sunset",
		},
	}

	for i := range users {
		if err := store.CreateUser(&users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Username, err)
		}
	}

	john := users[0].ID
	links := []models.Link{
		{UserID: john, Title: "Instagram", URL: "https://instagram.com/johndoe", Icon: "instagram"},
		{UserID: john, Title: "Twitter", URL: "https://twitter.com/johndoe", Icon: "twitter"},
		{UserID: john, Title: "YouTube", URL: "https://youtube.com/@johndoe", Icon: "youtube"},
		{UserID: john, Title: "Portfolio", URL: "https://johndoe.com", Icon: "globe"},
		{UserID: john, Title: "GitHub", URL: "https://github.com/johndoe", Icon: "github"},
	}

	for i := range links {
		if err := store.CreateLink(&links[i]); err != nil {
			return fmt.Errorf("seed link %s: %w", links[i].Title, err)
		}
	}

	return nil
}
