package types

type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// ValidSeverity reports whether s is one of the accepted severity levels.
func ValidSeverity(s Severity) bool {
	switch s {
	case Low, Medium, High, Critical:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

// IncidentReport lives under userLocation/{email}/reports/report_{N}.
type IncidentReport struct {
	ReportNumber int          `firestore:"reportNumber" json:"reportNumber"`
	Description  string       `firestore:"description" json:"description"`
	Severity     Severity     `firestore:"severity" json:"severity"`
	Timestamp    string       `firestore:"timestamp" json:"timestamp"`
	Status       ReportStatus `firestore:"status" json:"status"`
}

// ReportMetadata is the sibling metadata doc tracking the highest report
// number ever allocated for a user.
type ReportMetadata struct {
	LastReportNumber int `firestore:"lastReportNumber" json:"lastReportNumber"`
}
