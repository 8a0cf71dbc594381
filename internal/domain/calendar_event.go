package domain

// CalendarEvent is a dated reminder. The ID is time-based (milliseconds)
// and unique within the event collection.
type CalendarEvent struct {
	ID    int64  `validate:"gt=0" label:"id"`
	Title string `validate:"notblank" label:"title"`
	Date  Date   `validate:"required" label:"date"`
}

// Validate ensures the event adheres to domain rules
func (e *CalendarEvent) Validate() error {
	return validateEntity("event", e)
}
