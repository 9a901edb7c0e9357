package parse

// Message is one parsed line-level entry in a transcript timeline.
// Tags and Important are filled in by the classifier after parsing and
// never re-derived.
type Message struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`     // "2024/05/01"
	Time      string   `json:"time"`     // "上午09:15", marker included
	Datetime  string   `json:"datetime"` // date + " " + time
	Sender    string   `json:"sender"`
	Content   string   `json:"content"`
	IsSystem  bool     `json:"isSystem"`
	Important bool     `json:"isImportant"`
	Tags      []string `json:"tags,omitempty"`
}

// Result holds the output of parsing one raw transcript.
// Participants are sender names in first-seen order.
type Result struct {
	Messages     []Message
	Participants []string
}
