package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const slowHealthThreshold = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check the readiness endpoint of a running server (default http://localhost:$PORT)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := "http://localhost:8080"
	if port := os.Getenv("PORT"); port != "" {
		baseURL = "http://localhost:" + port
	}
	if len(args) > 0 {
		baseURL = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	client := &http.Client{Timeout: 5 * time.Second}
	start := time.Now()
	resp, err := client.Get(baseURL + "/readyz")
	if err != nil {
		PrintError("Health check failed: %v", err)
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readyz returned %d: %s", resp.StatusCode, body)
	}

	if duration > slowHealthThreshold {
		PrintWarning("Health check warning: slow response time (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}
	return nil
}
