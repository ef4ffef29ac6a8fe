// internal/domain/notification/entity.go
package notification

import "time"

// Notification is one entry in the user's feed
type Notification struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feed is the user's notification list with its unread count
type Feed struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// Empty returns a feed with no entries
func Empty() Feed {
	return Feed{Notifications: []Notification{}}
}
