package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTopicWeightsCoversCanonicalSet(t *testing.T) {
	w := NewTopicWeights()
	if len(w) != len(CanonicalTopics) {
		t.Fatalf("expected %d topics, got %d", len(CanonicalTopics), len(w))
	}
	for _, topic := range CanonicalTopics {
		if v, ok := w[topic]; !ok || v != 0 {
			t.Fatalf("topic %q should start at 0, got %d (present=%v)", topic, v, ok)
		}
	}
}

func TestApplyIgnoresUnknownTopics(t *testing.T) {
	w := NewTopicWeights()
	w.Apply([]string{"Fitness", "Quantum Gardening"}, 3)

	if w["Fitness"] != 3 {
		t.Fatalf("expected Fitness=3, got %d", w["Fitness"])
	}
	if _, ok := w["Quantum Gardening"]; ok {
		t.Fatalf("unknown topic must not be added as a key")
	}
	if len(w) != len(CanonicalTopics) {
		t.Fatalf("key set must stay canonical, got %d keys", len(w))
	}
}

func TestWeightsGoNegative(t *testing.T) {
	w := NewTopicWeights()
	w.Decrement([]string{"Music"})
	w.Decrement([]string{"Music"})
	if w["Music"] != -2 {
		t.Fatalf("expected Music=-2, got %d", w["Music"])
	}
}

func TestSeedOverwritesInsteadOfAdding(t *testing.T) {
	w := NewTopicWeights()
	w.Apply([]string{"Art"}, 5)
	w.Seed([]string{"Art", "Writing"}, 1)

	if w["Art"] != 1 || w["Writing"] != 1 {
		t.Fatalf("expected Art=1 Writing=1, got Art=%d Writing=%d", w["Art"], w["Writing"])
	}
}

func TestCanonicalJSONOrderIsStable(t *testing.T) {
	w := NewTopicWeights()
	w["Finance"] = 7
	w["Music"] = -1

	first := w.CanonicalJSON()
	for i := 0; i < 20; i++ {
		if got := w.CanonicalJSON(); got != first {
			t.Fatalf("serialization changed between calls:\n%s\n%s", first, got)
		}
	}

	// Keys must appear in canonical order, not map iteration order.
	prev := -1
	for _, topic := range CanonicalTopics {
		idx := strings.Index(first, `"`+topic+`"`)
		if idx < 0 {
			t.Fatalf("canonical JSON missing topic %q", topic)
		}
		if idx < prev {
			t.Fatalf("topic %q out of canonical order", topic)
		}
		prev = idx
	}
}

func TestCanonicalJSONKeepsLiteralAmpersand(t *testing.T) {
	w := NewTopicWeights()
	out := w.CanonicalJSON()

	if !strings.Contains(out, `"AI & Machine Learning"`) {
		t.Fatalf("ampersand must not be escaped, got %s", out)
	}
	if strings.Contains(out, `&`) {
		t.Fatalf("found HTML-escaped ampersand in %s", out)
	}

	// The canonical form is what gets stored and embedded; it has to parse
	// back as ordinary JSON.
	var parsed map[string]int
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("canonical JSON does not parse: %v", err)
	}
	if len(parsed) != len(CanonicalTopics) {
		t.Fatalf("expected %d keys, got %d", len(CanonicalTopics), len(parsed))
	}
}

func TestUnmarshalDropsUnknownKeys(t *testing.T) {
	var w TopicWeights
	raw := `{"Fitness": 4, "Underwater Basket Weaving": 9}`
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if w["Fitness"] != 4 {
		t.Fatalf("expected Fitness=4, got %d", w["Fitness"])
	}
	if _, ok := w["Underwater Basket Weaving"]; ok {
		t.Fatalf("unknown key survived unmarshal")
	}
	if len(w) != len(CanonicalTopics) {
		t.Fatalf("unmarshal must restore the full canonical key set")
	}
}

func TestScanValueRoundTrip(t *testing.T) {
	w := NewTopicWeights()
	w["Startups"] = 3
	w["Education"] = -2

	v, err := w.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out TopicWeights
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if out["Startups"] != 3 || out["Education"] != -2 {
		t.Fatalf("round trip lost weights: %+v", out)
	}
}

func TestScanNilResetsToZeroVector(t *testing.T) {
	var w TopicWeights
	if err := w.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(w) != len(CanonicalTopics) {
		t.Fatalf("expected full zero vector, got %d keys", len(w))
	}
}
