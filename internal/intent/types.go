// Package intent classifies utterances and resolves them into
// structured scheduling intents.
package intent

import (
	"github.com/dmarques-dev/assistente-go/internal/extract"
	"github.com/dmarques-dev/assistente-go/internal/temporal"
)

// Category is the closed set of utterance purposes.
type Category string

const (
	CategorySchedule     Category = "schedule"
	CategoryShoppingList Category = "shopping_list"
	CategoryQuery        Category = "query"
	CategoryGreeting     Category = "greeting"
	CategoryUnknown      Category = "unknown"
)

// String returns the category's wire name.
func (c Category) String() string { return string(c) }

// DefaultTitle is used when no action verb was recognized.
const DefaultTitle = "Appointment"

// ScheduleIntent is the complete resolution result for one utterance.
// It is freshly constructed per call and owned by the caller.
type ScheduleIntent struct {
	Category  Category
	Title     string
	Temporal  temporal.Expression
	Structure extract.Structure
}
