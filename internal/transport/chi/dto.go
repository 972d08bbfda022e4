package chi

// chatRequest is the POST /v1/chat and /v1/search request body.
type chatRequest struct {
	Message string `json:"message"`
	Domain  string `json:"domain,omitempty"`
}

// chatResponse is the formatted chat reply.
type chatResponse struct {
	Response   string   `json:"response"`
	Confidence string   `json:"confidence"`
	Category   string   `json:"category"`
	Sources    []string `json:"sources"`
}

// searchResponse is the raw combined answer without formatting.
type searchResponse struct {
	Answer        string      `json:"answer"`
	Confidence    float64     `json:"confidence"`
	Category      string      `json:"category"`
	Sources       []string    `json:"sources"`
	Supplementary []searchHit `json:"supplementary,omitempty"`
	NoMatch       bool        `json:"no_match,omitempty"`
}

type searchHit struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
	Source     string  `json:"source"`
}

// healthResponse is the GET /healthz reply.
type healthResponse struct {
	Status      string `json:"status"`
	Collections int    `json:"collections"`
	Records     int    `json:"records"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
