package types

import (
	"encoding/json"
	"math"
)

// UserLocation is a tracked user's last known position. The mobile client
// writes one document per user, keyed by email, on every position update.
type UserLocation struct {
	ID        string  `firestore:"-" json:"id"` // Firestore document ID (email key)
	Email     string  `firestore:"email,omitempty" json:"email,omitempty"`
	Latitude  float64 `firestore:"latitude" json:"latitude"`
	Longitude float64 `firestore:"longitude" json:"longitude"`
	Timestamp string  `firestore:"timestamp,omitempty" json:"timestamp,omitempty"`
	Accuracy  float64 `firestore:"accuracy,omitempty" json:"accuracy,omitempty"`
	Speed     float64 `firestore:"speed,omitempty" json:"speed,omitempty"`
	Heading   float64 `firestore:"heading,omitempty" json:"heading,omitempty"`
}

// PresenceStatus is the heartbeat doc the client keeps under
// userLocation/{email}/status/presence.
type PresenceStatus struct {
	Online   bool   `firestore:"online" json:"online"`
	LastSeen string `firestore:"lastSeen" json:"lastSeen"`
}

// SafetyStatus is one user's verdict from one classification pass.
// MinDistance is in degree-equivalent units and is +Inf when no qualifying
// high-risk point existed.
type SafetyStatus struct {
	UserID      string
	Safe        bool
	MinDistance float64
}

// MarshalJSON renders a non-finite MinDistance as null; the JSON number
// grammar has no infinity.
func (s SafetyStatus) MarshalJSON() ([]byte, error) {
	out := struct {
		UserID      string   `json:"userId"`
		Safe        bool     `json:"safe"`
		MinDistance *float64 `json:"minDistance"`
	}{UserID: s.UserID, Safe: s.Safe}

	if !math.IsNaN(s.MinDistance) && !math.IsInf(s.MinDistance, 0) {
		out.MinDistance = &s.MinDistance
	}
	return json.Marshal(out)
}
