package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for outbound calls to the payroll API.
// Embedding *resty.Client exposes the full resty API while leaving room for
// client-wide behavior (auth token injection, body integrity headers) to be
// layered on by the adapter.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent HTTPClient with its own connection
// pool and configuration.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().
//	    SetHeader("Accept", "application/json").
//	    Get(baseURL + "/api/runs")
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
