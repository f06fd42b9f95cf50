package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"cityflow/datagen/cmd/datagen/options"
	"cityflow/datagen/pipeline"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetServeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"REDIS_URL", "REDIS_ENABLED", "SERVER_PORT", "PUSHGATEWAY_URL",
		"DATAGEN_OUTPUT_DIR", "DATAGEN_DAYS", "DATAGEN_SEED", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// startServe runs the serve command in the background and returns its
// result channel.
func startServe(t *testing.T, ctx context.Context, dir string) <-chan error {
	t.Helper()
	c := GetCommand()
	options.SetFlags(c)
	require.NoError(t, c.ParseFlags([]string{"--output-dir", dir}))

	done := make(chan error, 1)
	go func() { done <- Run(ctx, c) }()
	return done
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func waitHealthy(t *testing.T, base string, done <-chan error) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case err := <-done:
			t.Fatalf("server exited early: %v", err)
		default:
		}
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("server did not become healthy")
}

// ── Serve lifecycle tests ──

func TestServeAndShutdown(t *testing.T) {
	unsetServeEnv(t)
	port := freePort(t)
	t.Setenv("SERVER_PORT", strconv.Itoa(port))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "city_zones.csv"), []byte("zone_id\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startServe(t, ctx, dir)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitHealthy(t, base, done)

	code, body := get(t, base+"/datasets")
	require.Equal(t, http.StatusOK, code)
	var listing struct {
		Count    int `json:"count"`
		Datasets []struct {
			Name  string `json:"name"`
			Bytes int64  `json:"bytes"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	require.Equal(t, 1, listing.Count)
	assert.Equal(t, "city_zones", listing.Datasets[0].Name)
	assert.Equal(t, int64(8), listing.Datasets[0].Bytes)

	code, body = get(t, base+"/files/city_zones.csv")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "zone_id\n", string(body))

	code, body = get(t, base+"/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `cityflow_datagen_dataset_bytes{dataset="city_zones",format="csv"} 8`)
	assert.Contains(t, string(body), "cityflow_datagen_dataset_generated_timestamp_seconds")
	assert.Contains(t, string(body), "go_goroutines")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServePortInUse(t *testing.T) {
	unsetServeEnv(t)
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	t.Setenv("SERVER_PORT", strconv.Itoa(ln.Addr().(*net.TCPAddr).Port))

	select {
	case err := <-startServe(t, context.Background(), t.TempDir()):
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not fail on an occupied port")
	}
}

func TestServeRedisManifestRequiresURL(t *testing.T) {
	unsetServeEnv(t)
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("SERVER_PORT", strconv.Itoa(freePort(t)))

	err := <-startServe(t, context.Background(), t.TempDir())
	var md *pipeline.MissingDependencyError
	require.True(t, errors.As(err, &md), "got %v", err)
	assert.Equal(t, "redis", md.Dependency)
}

func TestServeInvalidPort(t *testing.T) {
	unsetServeEnv(t)
	t.Setenv("SERVER_PORT", "70000")

	err := <-startServe(t, context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
