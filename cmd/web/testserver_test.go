package main

import (
	"context"
	"io"
	"testing"

	"github.com/RaheesAhmed/growthcompass/internal/e2etest"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "GROWTHCOMPASS_ADDR":
		return "localhost:0", true
	case "GROWTHCOMPASS_SQLITE_URL":
		return ":memory:", true
	case "GROWTHCOMPASS_DISABLE_AI":
		return "true", true
	default:
		return "", false
	}
}

// startTestServer starts the application on a random port with an in-memory
// database and the canned plan generator.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}
