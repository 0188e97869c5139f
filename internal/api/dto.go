package api

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// FormatsResponse lists the report formats accepted by ?format=.
type FormatsResponse struct {
	Formats []string `json:"formats"`
	Aliases []string `json:"aliases"`
}
