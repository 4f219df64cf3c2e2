package domain

// OccupancyStatus tells whether a unit currently has a resident.
type OccupancyStatus string

const (
	StatusOccupied OccupancyStatus = "occupied"
	StatusVacant   OccupancyStatus = "vacant"
)

// Resident holds the contact card shown in the directory.
type Resident struct {
	Name       string `json:"name" bson:"name"`
	Email      string `json:"email,omitempty" bson:"email"`
	Phone      string `json:"phone,omitempty" bson:"phone"`
	MoveInDate string `json:"move_in_date,omitempty" bson:"move_in_date"`
}

// Apartment is a single unit in the building directory.
type Apartment struct {
	ID       string          `json:"id" bson:"_id"`
	Number   string          `json:"number" bson:"number"`
	Floor    string          `json:"floor" bson:"floor"`
	Type     string          `json:"type" bson:"type"`
	Status   OccupancyStatus `json:"status" bson:"status"`
	Resident *Resident       `json:"resident" bson:"resident,omitempty"`
}
