package teacher

import "time"

// Teacher is owned by the user-administration side of the system.
// The salary engine only ever reads it.
type Teacher struct {
	ID        string
	Name      string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
