package entity

// Appointment is a persisted calendar entry. The ID is assigned by the
// store on first save and is unique among all stored appointments.
type Appointment struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD, no time component
	Start       int    `json:"start"`
	Duration    int    `json:"duration"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Draft is an appointment that has not been saved yet and therefore has
// no ID. Only the store can turn a Draft into an Appointment.
type Draft struct {
	Date        string
	Start       int
	Duration    int
	Title       string
	Description string
}
