package domain

import "time"

// User is a registered account. Password material never leaves the
// credential service.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}
