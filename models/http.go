package models

// PushRequest is the body sent to the remote service with pending local edits.
type PushRequest struct {
	Changes []PendingChange `json:"changes"`
	Length  int             `json:"length"`
}

// PullResponse lists remote entities changed since the last successful sync.
type PullResponse struct {
	Records []RemoteRecord `json:"records"`
	Length  int            `json:"length"`
}

// MergeRequest carries the user-composed record for a manual merge.
type MergeRequest struct {
	Data Record `json:"data"`
}

// ResolveResponse is returned by the single-conflict resolve endpoints.
type ResolveResponse struct {
	ConflictID string `json:"conflict_id"`
	Record     Record `json:"record"`
}

// CountResponse is returned by batch endpoints.
type CountResponse struct {
	Count int `json:"count"`
}

// StrategyRequest changes the auto-resolve policy.
type StrategyRequest struct {
	Strategy AutoResolveStrategy `json:"strategy"`
}

// ConnectivityRequest injects a host connectivity transition.
type ConnectivityRequest struct {
	Online bool `json:"online"`
}

// TrackChangeRequest records a local edit made by entity-editing code.
type TrackChangeRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Data       Record `json:"data"`
}
