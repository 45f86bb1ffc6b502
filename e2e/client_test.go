package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const txidHeader = "X-Transaction-ID"

var httpClient = &http.Client{Timeout: 10 * time.Second}

type toolResponse struct {
	statusCode int
	txid       string
	body       map[string]any
}

func postJSON(t *testing.T, ts *testServer, tool string, body string) toolResponse {
	return post(t, ts, tool, "application/json", strings.NewReader(body))
}

func postForm(t *testing.T, ts *testServer, tool string, values url.Values) toolResponse {
	return post(t, ts, tool, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func post(t *testing.T, ts *testServer, tool string, contentType string, body io.Reader) (r toolResponse) {
	resp, err := httpClient.Post(ts.baseURL+"/tools/"+tool, contentType, body)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}
	defer resp.Body.Close()

	bb, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Got unexpected error: %s", err)
	}

	r.statusCode = resp.StatusCode
	r.txid = resp.Header.Get(txidHeader)
	if err := json.NewDecoder(bytes.NewReader(bb)).Decode(&r.body); err != nil {
		t.Fatalf("Response was not JSON: %s: %q", err, bb)
	}
	return
}

func newHealthClient(t *testing.T, ts *testServer) healthpb.HealthClient {
	conn, err := grpc.NewClient("unix://"+ts.healthSockAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("did not connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func waitForReady() grpc.CallOption {
	return grpc.WaitForReady(true)
}
