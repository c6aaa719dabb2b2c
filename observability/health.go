package observability

import "context"

// HealthStatus represents the health state of a component or service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// statusRank orders statuses from healthiest to worst. Unknown statuses
// rank as up and never degrade an aggregate.
var statusRank = map[HealthStatus]int{
	HealthStatusUp:       0,
	HealthStatusDegraded: 1,
	HealthStatusDown:     2,
}

// Health describes the health of a single credential component, such as
// the token service or a password hasher.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Healthy returns an up Health for the named component.
func Healthy(name string) Health {
	return Health{Name: name, Status: HealthStatusUp}
}

// Unhealthy returns a down Health for the named component carrying the
// failure message.
func Unhealthy(name string, err error) Health {
	h := Health{Name: name, Status: HealthStatusDown}
	if err != nil {
		h.Message = err.Error()
	}
	return h
}

// WithDetail returns a copy of the Health with the detail added.
func (h Health) WithDetail(key, value string) Health {
	details := make(map[string]string, len(h.Details)+1)
	for k, v := range h.Details {
		details[k] = v
	}
	details[key] = value
	h.Details = details
	return h
}

// HealthChecker is implemented by components that can report their health,
// such as the token service checking that its signing secret is usable.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// ServiceHealth aggregates component health into an overall status for
// the host service.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth that starts out up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Version: version, Status: HealthStatusUp}
}

// AddComponent records a component result. The aggregate status only ever
// worsens: degraded loses to down, up loses to both.
func (sh *ServiceHealth) AddComponent(ch Health) {
	sh.Components = append(sh.Components, ch)
	if statusRank[ch.Status] > statusRank[sh.Status] {
		sh.Status = ch.Status
	}
}

// CheckAll runs every checker and folds the results into a single
// ServiceHealth.
func CheckAll(ctx context.Context, service, version string, checkers ...HealthChecker) *ServiceHealth {
	sh := NewServiceHealth(service, version)
	for _, c := range checkers {
		sh.AddComponent(c.CheckHealth(ctx))
	}
	return sh
}
