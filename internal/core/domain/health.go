package domain

// HealthState is the backend availability shown on the dashboard.
type HealthState string

// Health states.
const (
	HealthHealthy  HealthState = "healthy"
	HealthDegraded HealthState = "degraded"
	HealthDown     HealthState = "down"
)

// HealthFromStatus maps a /health status string to a state.
// Anything other than "healthy" counts as degraded.
func HealthFromStatus(status string) HealthState {
	if status == "healthy" {
		return HealthHealthy
	}
	return HealthDegraded
}

// Label returns the dashboard badge text.
func (h HealthState) Label() string {
	switch h {
	case HealthHealthy:
		return "Operational"
	case HealthDegraded:
		return "Degraded"
	default:
		return "Offline"
	}
}

// HealthStatus is the raw /health response.
type HealthStatus struct {
	Status string `json:"status"`
}
