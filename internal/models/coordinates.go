package models

// Coordinate represents a geographical point defined by its latitude and longitude in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}
