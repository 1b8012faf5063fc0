package chat

// Message is one chat message. AuthToken is stored plainly in the log and
// redacted at read time: it survives to the client only when it matches the
// reader's own token, so the UI can mark "mine" without a user system.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // epoch ms
	RoomID    string `json:"roomId"`
	AuthToken string `json:"authToken,omitempty"`
}

// redactFor blanks AuthToken unless it equals the reader's token. Sender,
// text, id and timestamp pass through untouched.
func (m Message) redactFor(readerToken string) Message {
	if m.AuthToken != readerToken {
		m.AuthToken = ""
	}
	return m
}
