package types

import (
  "database/sql/driver"
  "encoding/json"
  "fmt"
  "strconv"
  "strings"
)

// CanonicalTopics is the closed topic vocabulary. Weight vectors carry exactly
// these keys; serialization always walks this slice so the textual form (and
// therefore the embedding computed from it) is stable.
var CanonicalTopics = []string{
  "AI & Machine Learning",
  "Software Development",
  "Cybersecurity",
  "Startups",
  "Marketing",
  "Finance",
  "Fitness",
  "Nutrition",
  "Mental Health",
  "Education",
  "Social Issues",
  "Entertainment",
  "Art",
  "Writing",
  "Music",
}

// TopicWeights is a per-user signed preference score per canonical topic.
// Keys outside the canonical set are never stored; weights are unbounded and
// may go negative.
type TopicWeights map[string]int

func NewTopicWeights() TopicWeights {
  w := make(TopicWeights, len(CanonicalTopics))
  for _, topic := range CanonicalTopics {
    w[topic] = 0
  }
  return w
}

func (w TopicWeights) Increment(topics []string) {
  w.Apply(topics, 1)
}

func (w TopicWeights) Decrement(topics []string) {
  w.Apply(topics, -1)
}

// Apply adds delta to every canonical topic present in topics. Non-canonical
// topics are ignored, never added as new keys.
func (w TopicWeights) Apply(topics []string, delta int) {
  for _, topic := range topics {
    if _, ok := w[topic]; ok {
      w[topic] += delta
    }
  }
}

// Seed overwrites the weight of every canonical topic in topics with an
// absolute value (used for the author's self-declared interest on article
// submission, which is a seed, not a relative bump).
func (w TopicWeights) Seed(topics []string, value int) {
  for _, topic := range topics {
    if _, ok := w[topic]; ok {
      w[topic] = value
    }
  }
}

// CanonicalJSON renders the vector as a JSON object in canonical topic order.
// Keys are quoted with strconv.Quote, not json.Marshal, which would
// HTML-escape "&" and change the text fed to the embedder.
func (w TopicWeights) CanonicalJSON() string {
  var b strings.Builder
  b.WriteByte('{')
  for i, topic := range CanonicalTopics {
    if i > 0 {
      b.WriteByte(',')
    }
    b.WriteString(strconv.Quote(topic))
    b.WriteByte(':')
    b.WriteString(strconv.Itoa(w[topic]))
  }
  b.WriteByte('}')
  return b.String()
}

func (w TopicWeights) MarshalJSON() ([]byte, error) {
  return []byte(w.CanonicalJSON()), nil
}

func (w *TopicWeights) UnmarshalJSON(data []byte) error {
  var raw map[string]int
  if err := json.Unmarshal(data, &raw); err != nil {
    return err
  }
  out := NewTopicWeights()
  for topic, weight := range raw {
    if _, ok := out[topic]; ok {
      out[topic] = weight
    }
  }
  *w = out
  return nil
}

func (w TopicWeights) Value() (driver.Value, error) {
  return w.CanonicalJSON(), nil
}

func (w *TopicWeights) Scan(value interface{}) error {
  if value == nil {
    *w = NewTopicWeights()
    return nil
  }
  var raw []byte
  switch v := value.(type) {
  case []byte:
    raw = v
  case string:
    raw = []byte(v)
  default:
    return fmt.Errorf("unsupported topic_weights column type %T", value)
  }
  return w.UnmarshalJSON(raw)
}

func (TopicWeights) GormDataType() string {
  return "json"
}
