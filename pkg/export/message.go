package export

import (
	"encoding/json"
	"slices"
	"strings"
)

// DateLayout is the calendar-date form messages carry. Lexicographic order
// over it equals chronological order, which the batch sort relies on.
const DateLayout = "2006-01-02"

// Message is one exported pinned message.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// SortByDate orders a batch ascending by date. The sort is stable, so
// messages sharing a date keep their discovery order: chat order first,
// pagination order within a chat.
func SortByDate(batch []Message) {
	slices.SortStableFunc(batch, func(a, b Message) int {
		return strings.Compare(a.Date, b.Date)
	})
}

// Marshal serializes a batch as a JSON array. An empty batch serializes as
// [], never null.
func Marshal(batch []Message) ([]byte, error) {
	if batch == nil {
		batch = []Message{}
	}
	return json.Marshal(batch)
}
