package model

import (
	"encoding/json"
	"math"
	"testing"
)

func makeArtifact(t *testing.T, weights map[string]float64, intercept float64) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"format":    FormatLogRegV1,
		"weights":   weights,
		"intercept": intercept,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestDecodeAndScore(t *testing.T) {
	data := makeArtifact(t, map[string]float64{"a": 1.0, "b": -2.0}, 0.5)
	p, err := Decode(data, []string{"a", "b"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := p.PredictProba([]float64{2.0, 1.0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	// z = 0.5 + 1*2 - 2*1 = 0.5
	want := 1.0 / (1.0 + math.Exp(-0.5))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("proba=%v want=%v", got, want)
	}
}

func TestDecodeAlignsToFeatureOrder(t *testing.T) {
	data := makeArtifact(t, map[string]float64{"a": 1.0, "b": 3.0}, 0.0)
	fwd, err := Decode(data, []string{"a", "b"})
	if err != nil {
		t.Fatalf("decode fwd: %v", err)
	}
	rev, err := Decode(data, []string{"b", "a"})
	if err != nil {
		t.Fatalf("decode rev: %v", err)
	}
	pf, err := fwd.PredictProba([]float64{2.0, 5.0})
	if err != nil {
		t.Fatalf("fwd: %v", err)
	}
	pr, err := rev.PredictProba([]float64{5.0, 2.0})
	if err != nil {
		t.Fatalf("rev: %v", err)
	}
	if math.Abs(pf-pr) > 1e-15 {
		t.Fatalf("column order changed the score: %v vs %v", pf, pr)
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	data := []byte(`{"format":"pickle","weights":{"a":1},"intercept":0}`)
	if _, err := Decode(data, []string{"a"}); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestDecodeRejectsMissingWeight(t *testing.T) {
	data := makeArtifact(t, map[string]float64{"a": 1.0}, 0.0)
	if _, err := Decode(data, []string{"a", "b"}); err == nil {
		t.Fatalf("expected error for uncovered feature")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json"), []string{"a"}); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Decode(makeArtifact(t, map[string]float64{"a": 1}, 0), nil); err == nil {
		t.Fatalf("expected empty order error")
	}
}

func TestPredictProbaLengthMismatch(t *testing.T) {
	p, err := Decode(makeArtifact(t, map[string]float64{"a": 1.0}, 0.0), []string{"a"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := p.PredictProba([]float64{1, 2}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestChecksumIsStable(t *testing.T) {
	a := Checksum([]byte("payload"))
	b := Checksum([]byte("payload"))
	if a != b || len(a) != 64 {
		t.Fatalf("checksum unstable or wrong length: %q %q", a, b)
	}
	if a == Checksum([]byte("other")) {
		t.Fatalf("distinct payloads collided")
	}
}
