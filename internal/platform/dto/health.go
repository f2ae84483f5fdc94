package dto

// HealthResponse describes the payload returned by standard /healthz endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// SyncResponse is returned to the event host after an invocation completes.
type SyncResponse struct {
	Status string `json:"status"`
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
}
