package api

import (
	"nolabels/internal/engine"
	"nolabels/internal/items"
)

// QueryRow is one item lacking a target-language label.
type QueryRow struct {
	ID     string            `json:"id"`
	Item   string            `json:"item"`
	Labels map[string]string `json:"labels"`
}

// QueryResponse is the result of a label query.
type QueryResponse struct {
	RunID    string     `json:"runId,omitempty"`
	Target   string     `json:"target"`
	Fallback []string   `json:"fallback"`
	Source   string     `json:"source"`
	Checked  int        `json:"checked"`
	Rows     []QueryRow `json:"rows"`
	Rejected []string   `json:"rejected"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// FromQuery converts a finished query into its transport form. Slices are
// never nil so they encode as [] rather than null.
func FromQuery(q *engine.Query, results *engine.Results) QueryResponse {
	resp := QueryResponse{
		Target:   q.Target,
		Fallback: append([]string{}, q.Fallback...),
		Checked:  len(q.Items()),
		Rows:     make([]QueryRow, 0, results.Len()),
		Rejected: append([]string{}, q.Rejected()...),
	}
	for _, row := range results.Rows() {
		labels := make(map[string]string, len(row.Labels))
		for _, cell := range row.Labels {
			labels[cell.Language] = cell.Label
		}
		resp.Rows = append(resp.Rows, QueryRow{
			ID:     row.ID,
			Item:   items.Prefixed(row.ID),
			Labels: labels,
		})
	}
	return resp
}
