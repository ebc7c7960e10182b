package types

type SOSStatus string

const (
	SOSActive   SOSStatus = "active"
	SOSResolved SOSStatus = "resolved"
)

type GeoPoint struct {
	Latitude  float64 `firestore:"latitude" json:"latitude"`
	Longitude float64 `firestore:"longitude" json:"longitude"`
}

// SOSAlert is an emergency alert raised by a user, stored in the sosAlerts
// collection for responders.
type SOSAlert struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	Timestamp string    `firestore:"timestamp" json:"timestamp"`
	Location  GeoPoint  `firestore:"location" json:"location"`
	Address   string    `firestore:"address,omitempty" json:"address,omitempty"`
	Status    SOSStatus `firestore:"status" json:"status"`
}
