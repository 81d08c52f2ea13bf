package storage

// Appointment is one scheduled entry for a user. Date and Time keep the
// canonical render formats (DD/MM/YYYY and HH:MM) so stored records
// match what was shown to the user.
type Appointment struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"created_at"`
}

// ShoppingItem is one entry on a user's shopping list.
type ShoppingItem struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Item      string `json:"item"`
	Purchased bool   `json:"purchased"`
	CreatedAt int64  `json:"created_at"`
}

// Reminder is a notification queued for delivery at DueAt.
type Reminder struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ChatID    int64  `json:"chat_id"`
	Message   string `json:"message"`
	DueAt     int64  `json:"due_at"`
	Sent      bool   `json:"sent"`
	CreatedAt int64  `json:"created_at"`
}
