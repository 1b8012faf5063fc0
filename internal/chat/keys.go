package chat

// Per-room key namespace in the state store. Metadata and the message log
// expire independently; the pub/sub channel has no persisted state.
func metaKey(roomID string) string     { return "meta:" + roomID }
func messagesKey(roomID string) string { return "messages:" + roomID }
