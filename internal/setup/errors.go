package setup

// ErrorList accumulates human-readable setup failure descriptions in the
// order they occurred. A non-empty list means setup failed; there is no
// partial-success state.
type ErrorList struct {
	messages []string
}

// Add appends a failure description.
func (e *ErrorList) Add(message string) {
	e.messages = append(e.messages, message)
}

// Empty reports whether no errors were recorded.
func (e *ErrorList) Empty() bool {
	return len(e.messages) == 0
}

// Messages returns the accumulated descriptions in order.
func (e *ErrorList) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// Len returns the number of recorded errors.
func (e *ErrorList) Len() int {
	return len(e.messages)
}
