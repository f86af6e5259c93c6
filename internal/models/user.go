package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUpdate carries a partial user change; nil fields are left untouched.
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
