// cmd/ping/main.go
//
// Tiny self-contained probe for Docker HEALTHCHECK:
//   HEALTHCHECK CMD ["/ping"]

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = 8080
	healthEndpoint       = "/healthz"
	expectedHealthStatus = "ok"
	requestTimeout       = 1 * time.Second

	// exit codes
	codeRequestFailed     = 2
	codeBadHTTPStatus     = 3
	codeDecodeError       = 4
	codeReportedUnhealthy = 5
)

// healthResp mirrors the JSON body { "status": "ok" }.
type healthResp struct {
	Status string `json:"status"`
}

func port() int {
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			return p
		}
	}
	return defaultPort
}

func main() {
	p := port()
	url := fmt.Sprintf("http://localhost:%d%s", p, healthEndpoint)

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Get(url)
	if err != nil {
		log.Printf("request failed: %v", err)
		os.Exit(codeRequestFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Printf("unexpected HTTP status %d", resp.StatusCode)
		os.Exit(codeBadHTTPStatus)
	}

	var body healthResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("decode error: %v", err)
		os.Exit(codeDecodeError)
	}

	if body.Status != expectedHealthStatus {
		log.Printf("service reported unhealthy: %q", body.Status)
		os.Exit(codeReportedUnhealthy)
	}

	log.Printf("service healthy on port %d", p)
}
