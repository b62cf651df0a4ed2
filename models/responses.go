package models

// ErrorResponse is the JSON body written for failed user service requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health and readiness endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// VersionResponse is the body of GET /version on both processes.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewVersionResponse copies build metadata into its wire form.
func NewVersionResponse(info AppBuildInfo) VersionResponse {
	return VersionResponse{
		Version: info.BuildVersion(),
		Date:    info.BuildDate(),
		Commit:  info.BuildCommit(),
	}
}
