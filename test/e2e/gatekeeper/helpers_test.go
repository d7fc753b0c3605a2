//go:build e2e

package gatekeeper_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for gatekeeper end-to-end tests.
 * This includes container setup, login helpers and assertions.
 */

const (
	testImageName = "gatekeeper-test:latest"

	testSecret    = "e2e-secret-0123456789abcdef012345"
	adminUsername = "admin"
	adminPassword = "admin123"
)

// TestMain builds the Docker image once before all tests and removes it
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building gatekeeper Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up gatekeeper Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/gatekeeper/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupContainer starts gatekeeper with demo users seeded and returns an SDK
// client pointed at it. extraEnv overrides the defaults.
func setupContainer(t *testing.T, extraEnv map[string]string) *authsdk.Client {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_SECRET":          testSecret,
		"AUTH_SEED_DEMO_USERS": "true",
		"AUTH_TOKEN_TTL":       "1h",
		"ENV":                  "test",
		"LOG_LEVEL":            "info",
		"LOG_FORMAT":           "json",
		// Tests make many rapid requests that would otherwise hit the strict limits
		"RATELIMIT_STRICT_REQUESTS": "1000",
		"RATELIMIT_STRICT_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return authsdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// login authenticates and asserts the token envelope.
func login(t *testing.T, client *authsdk.Client, username, password string) string {
	t.Helper()

	resp, err := client.Login(t.Context(), username, password)
	require.NoError(t, err, "login should succeed")
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Positive(t, resp.ExpiresIn)
	return resp.Token
}

// assertStatus checks err is an API error with the given HTTP status.
func assertStatus(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err, msg)
	require.True(t, authsdk.IsStatus(err, status), "%s - want HTTP %d, got: %v", msg, status, err)
}
