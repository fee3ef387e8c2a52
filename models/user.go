package models

// User represents a registered account. The password field holds the bcrypt
// hash, never the plaintext, and is excluded from JSON responses.
type User struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
}
