package models

// Admin represents a back-office identity as stored in the admins table.
type Admin struct {
	AdminID      string `db:"admin_id"`
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Timestamps
}
