package domain

// Consumer is a subscriber to leads. Consumer records are owned by the external
// consumer-management system; the worker treats them as read-only.
type Consumer struct {
	ID             string
	Keywords       []string // case-insensitive substring match against title+snippet
	ProfileText    string   // free-form description used as scoring context
	ContactChannel string   // notification address, empty means no notifications
	Subscriptions  []string // feed names this consumer watches
}
