package models

// Notification is a message delivered to a user by the notification service.
type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	IsRead    bool       `json:"isRead"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}

// UnreadCount is the body of GET /api/notifications/unread-count.
type UnreadCount struct {
	Count int64 `json:"count"`
}
