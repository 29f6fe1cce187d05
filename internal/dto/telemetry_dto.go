package dto

type ClientErrorEntry struct {
	Message        string `json:"message"`
	Stack          string `json:"stack,omitempty"`
	ComponentStack string `json:"componentStack,omitempty"`
	Timestamp      string `json:"timestamp"`
	UserAgent      string `json:"userAgent"`
	URL            string `json:"url"`
	UserID         string `json:"userId,omitempty"`
	ErrorType      string `json:"errorType"`
	Severity       string `json:"severity"`
}

type ErrorLogRequest struct {
	Errors []ClientErrorEntry `json:"errors"`
}

type PerformanceEntry struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	URL       string  `json:"url"`
	UserAgent string  `json:"userAgent"`
	Timestamp string  `json:"timestamp"`
}

type PerformanceLogRequest struct {
	Metrics []PerformanceEntry `json:"metrics"`
}

type TelemetryResponse struct {
	Success bool `json:"success"`
	Logged  int  `json:"logged"`
}
