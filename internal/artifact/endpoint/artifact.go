package endpoint

import (
	storage "github.com/bsgreeks/greeks-validator/internal/storage"
)

// HealthResponse response of the health check
type HealthResponse struct {
	Message string `json:"message"`
}

// ResultsResponse manifest response. Names carry no prefix, clients add
// "/files/" themselves.
type ResultsResponse struct {
	CSV   []string `json:"csv"`
	Plots []string `json:"plots"`
}

// DownloadsResponse recent download audit entries
type DownloadsResponse struct {
	Downloads []storage.DownloadRecord `json:"downloads"`
}

// DownloadSummaryResponse successful downloads per artifact name
type DownloadSummaryResponse struct {
	Counts map[string]int `json:"counts"`
}
