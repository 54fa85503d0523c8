package model

import "strings"

// User is a student account. Seniors donate items, juniors collect them.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	IsSenior     bool   `json:"isSenior"`
	Course       string `json:"course"`
	Year         int    `json:"year"`
	XPPoints     int    `json:"xpPoints"`
	ComputerYear int    `json:"computerYear"`
}

// SeniorComputerYear is the progression counter value that promotes a junior.
const SeniorComputerYear = 4

// EmailMatches reports whether email identifies the user. Emails compare
// case-insensitively everywhere.
func (u *User) EmailMatches(email string) bool {
	return strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(email))
}

// DisplayName returns the local part of the user's email.
func (u User) DisplayName() string {
	name, _, _ := strings.Cut(u.Email, "@")
	return name
}

// RoleName returns "Senior" or "Junior".
func (u User) RoleName() string {
	if u.IsSenior {
		return "Senior"
	}
	return "Junior"
}

// FindUser returns the index of the user with the given ID, or -1.
func FindUser(users []User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
