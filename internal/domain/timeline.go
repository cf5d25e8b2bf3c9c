package domain

// TaskRef is the minimal projection of a task carried by timeline entries.
type TaskRef struct {
	ID       int64
	Title    string
	Category string
}

// TimelineEntry is a session together with the task it belongs to.
type TimelineEntry struct {
	Session
	Task TaskRef
}
