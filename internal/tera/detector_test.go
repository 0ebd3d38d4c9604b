package tera

import (
	"testing"

	"github.com/eleven-am/battle-narrator/internal/screen"
	"github.com/eleven-am/battle-narrator/internal/vision"
)

type scriptedOmen struct {
	results []bool
	i       int
}

func (o *scriptedOmen) DetectOmen(*screen.Frame) bool {
	if o.i >= len(o.results) {
		return false
	}
	r := o.results[o.i]
	o.i++
	return r
}

type fixedScorer struct {
	detections []Detection
	calls      int
}

func (s *fixedScorer) ScoreTypes(*screen.Frame, *vision.Pool) []Detection {
	s.calls++
	return s.detections
}

func TestDetectorSamplesAfterOmenPasses(t *testing.T) {
	omen := &scriptedOmen{results: []bool{true, true, false}}
	scorer := &fixedScorer{detections: []Detection{
		{Type: TypeWater, Score: 0.9},
		{Type: TypeIce, Score: 0.8},
		{Type: TypeFire, Score: 0.1},
	}}
	detector := NewDetector(omen, scorer, nil, nil)

	// Two omen frames, then sampling starts.
	for i := 0; i < 2; i++ {
		if s := detector.Detect(nil); s != nil {
			t.Fatalf("verdict during omen at frame %d: %+v", i, s)
		}
	}
	if !detector.Detecting() {
		t.Fatal("not detecting after omen frames")
	}

	var summary *Summary
	for i := 0; i < DefaultBufferSize; i++ {
		summary = detector.Detect(nil)
		if i < DefaultBufferSize-1 && summary != nil {
			t.Fatalf("verdict before the sample buffer filled: %+v", summary)
		}
	}
	if summary == nil {
		t.Fatal("no verdict after the sample buffer filled")
	}

	if summary.Primary.Type != TypeWater {
		t.Errorf("primary = %v, want water", summary.Primary.Type)
	}
	if len(summary.Possible) != 1 || summary.Possible[0].Type != TypeIce {
		t.Errorf("possible = %v, want only ice", summary.Possible)
	}
	if detector.Detecting() {
		t.Error("still detecting after the verdict")
	}
}

func TestDetectorNoOmenNoDetection(t *testing.T) {
	omen := &scriptedOmen{results: []bool{false, false}}
	scorer := &fixedScorer{}
	detector := NewDetector(omen, scorer, nil, nil)

	detector.Detect(nil)
	detector.Detect(nil)
	if detector.Detecting() {
		t.Error("detecting without an omen")
	}
	if scorer.calls != 0 {
		t.Errorf("scored %d frames without an omen", scorer.calls)
	}
}

func TestDetectorOmenTimesOut(t *testing.T) {
	results := make([]bool, DefaultMaxOmenWait+1)
	for i := range results {
		results[i] = true
	}
	detector := NewDetector(&scriptedOmen{results: results}, &fixedScorer{}, nil, nil)

	for range results {
		if s := detector.Detect(nil); s != nil {
			t.Fatalf("verdict during a stuck omen: %+v", s)
		}
	}
	if detector.Detecting() {
		t.Error("still detecting after the omen timed out")
	}
}

func TestSummarize(t *testing.T) {
	if s := Summarize(nil); s != nil {
		t.Errorf("summary of nothing = %+v, want nil", s)
	}

	s := Summarize([]Detection{
		{Type: TypeDragon, Score: 1.0},
		{Type: TypeSteel, Score: 0.75},
		{Type: TypeFairy, Score: 0.74},
	})
	if s.Primary.Type != TypeDragon {
		t.Errorf("primary = %v, want dragon", s.Primary.Type)
	}
	if len(s.Possible) != 1 || s.Possible[0].Type != TypeSteel {
		t.Errorf("possible = %v, want steel at the three-quarter bound", s.Possible)
	}
}
