package user

import (
	"time"

	"github.com/carson-networks/pouch-server/internal/storage/user"
)

// User is the API response model for a user.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Email     string `json:"email" doc:"Email address"`
	Name      string `json:"name" doc:"Display name"`
	Locale    string `json:"locale" doc:"BCP 47 locale tag"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(row *user.User) User {
	return User{
		ID:        row.ID.String(),
		Email:     row.Email,
		Name:      row.Name,
		Locale:    row.Locale,
		CreatedAt: row.CreatedAt.Format(time.RFC3339),
	}
}
