package models

// User is a registered dashboard account.
// DateOfBirth is stored as an opaque string; the server does not validate its format.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	ProfilePic   string `json:"profilePic,omitempty"` // relative path under the uploads dir
}
