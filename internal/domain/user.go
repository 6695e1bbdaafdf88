package domain

import "time"

// User is the profile record of a platform member.
type User struct {
	UserID            string    `json:"id"`
	Role              Role      `json:"role"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Bio               string    `json:"bio,omitempty"`
	ProfilePicture    string    `json:"profilePicture,omitempty"`
	IsProfileComplete bool      `json:"isProfileComplete"`
	KarmaPoints       int       `json:"karmaPoints"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MentorProfile holds the public mentor fields of a user.
type MentorProfile struct {
	UserID         string    `json:"user"`
	Headline       string    `json:"headline,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Company        string    `json:"company,omitempty"`
	HourlyRate     float64   `json:"hourlyRate,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
