package main

import (
	"net/http"
	"os"
	"time"

	"github.com/ericogr/pocket-arena/internal/constants"
)

// Probes the server's liveness endpoint. HEALTHCHECK_URL overrides the
// default local address.
func main() {
	url := os.Getenv("HEALTHCHECK_URL")
	if url == "" {
		url = "http://127.0.0.1:8080" + constants.RouteHealthz
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
