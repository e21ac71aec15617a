package blackbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

var featureNames = []string{
	"air_temp_k", "proc_temp_k", "rpm", "torque_nm", "tool_wear_min",
	"TWF", "HDF", "PWF", "OSF", "RNF",
	"temp_diff_k", "power", "type_H", "type_L", "type_M",
}

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	return filepath.Dir(filepath.Dir(bbDir))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	binPath := filepath.Join(t.TempDir(), "sentineld")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/sentineld")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// fakeRegistry serves one approved version whose artifact scores every
// record at a fixed probability (zero weights, intercept = logit(p)).
func fakeRegistry(t *testing.T, version string, proba float64) *httptest.Server {
	t.Helper()
	weights := map[string]float64{}
	for _, n := range featureNames {
		weights[n] = 0
	}
	artifact, err := json.Marshal(map[string]any{
		"format":    "sentinel.logreg.v1",
		"weights":   weights,
		"intercept": math.Log(proba / (1 - proba)),
	})
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/2.0/mlflow/registered-models/get-by-alias", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"model_version":{"version":%q}}`, version)
	})
	mux.HandleFunc("/artifacts/", func(w http.ResponseWriter, r *http.Request) {
		w.Write(artifact)
	})
	return httptest.NewServer(mux)
}

func startDaemon(t *testing.T, registryURL string) string {
	t.Helper()
	bin := buildBinary(t)
	port := findFreePort(t)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)

	cmd := exec.Command(bin,
		"--addr", fmt.Sprintf("127.0.0.1:%d", port),
		"--registry-url", registryURL,
		"--poll-interval", "1",
		"--log-level", "error",
	)
	if err := cmd.Start(); err != nil {
		t.Fatalf("start daemon: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		res, err := http.Get(base + "/healthz")
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				return base
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("daemon never came up on %s", base)
	return ""
}

func telemetryBody() []byte {
	return []byte(`{
		"air_temp_k": 300.1, "proc_temp_k": 310.2, "rpm": 1500, "torque_nm": 40,
		"tool_wear_min": 10, "TWF": 0, "HDF": 0, "PWF": 0, "OSF": 0, "RNF": 0,
		"temp_diff_k": 10.1, "power": 60000,
		"type_H": false, "type_L": true, "type_M": false
	}`)
}

func TestEndToEndPrediction(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	reg := fakeRegistry(t, "7", 0.82)
	defer reg.Close()
	base := startDaemon(t, reg.URL)

	// Wait for the first refresh cycle to load v7.
	deadline := time.Now().Add(10 * time.Second)
	ready := false
	for time.Now().Before(deadline) && !ready {
		res, err := http.Get(base + "/health")
		if err == nil {
			var h struct {
				Status       string `json:"status"`
				ModelVersion string `json:"model_version"`
			}
			_ = json.NewDecoder(res.Body).Decode(&h)
			res.Body.Close()
			ready = h.Status == "ok" && h.ModelVersion == "7"
		}
		if !ready {
			time.Sleep(50 * time.Millisecond)
		}
	}
	if !ready {
		t.Fatalf("model v7 never became ready")
	}

	res, err := http.Post(base+"/predict", "application/json", bytes.NewReader(telemetryBody()))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	var out struct {
		FailureRisk float64 `json:"failure_risk"`
		Label       int     `json:"label"`
		Version     string  `json:"version"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Abs(out.FailureRisk-0.82) > 1e-9 {
		t.Fatalf("failure_risk=%v", out.FailureRisk)
	}
	if out.Label != 1 || out.Version != "7" {
		t.Fatalf("out=%+v", out)
	}
}

func TestDegradedBootWithoutRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	base := startDaemon(t, "")

	res, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	var h struct {
		Status       string `json:"status"`
		ModelVersion string `json:"model_version"`
	}
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if h.Status != "loading_or_error" || h.ModelVersion != "" {
		t.Fatalf("health=%+v", h)
	}

	res, err = http.Post(base+"/predict", "application/json", bytes.NewReader(telemetryBody()))
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", res.StatusCode)
	}
}
