package entity

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// MeetupLocation is the handover point a seller reveals once a deposit is held.
type MeetupLocation struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}
