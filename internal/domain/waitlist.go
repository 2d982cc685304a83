package domain

import "time"

// WaitlistEntry waitlist 表的一行
type WaitlistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
