// Package docgen generates the synthetic log-record corpus used by the
// benchmark and verification harness. Generation is seedable so runs are
// reproducible, and the extracted value column can be fingerprinted to
// prove the index and the baseline consumed identical data.
package docgen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"
	blake3 "lukechampine.com/blake3"

	"github.com/CVDpl/go-ait/internal/common"
	"github.com/CVDpl/go-ait/pkg/ait"
)

// LogRecord is one synthetic document.
type LogRecord struct {
	DocID       int64     `json:"doc_id"`
	Timestamp   string    `json:"timestamp"`
	Level       string    `json:"level"`
	Message     string    `json:"message"`
	Source      LogSource `json:"source"`
	User        User      `json:"user"`
	PayloadSize uint32    `json:"payload_size"`
	Tags        []string  `json:"tags"`
	Answers     []Answer  `json:"answers"`
	Processed   bool      `json:"processed"`
}

// LogSource describes where a record originated.
type LogSource struct {
	IP     string `json:"ip"`
	Host   string `json:"host"`
	Region string `json:"region"`
}

// User is the synthetic user attached to a record.
type User struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Metrics   UserMetrics `json:"metrics"`
}

// UserMetrics holds per-user activity counters.
type UserMetrics struct {
	LoginTimeMs uint32 `json:"login_time_ms"`
	Clicks      uint32 `json:"clicks"`
	Active      bool   `json:"active"`
}

// Answer is a synthetic DNS answer entry.
type Answer struct {
	NxDomain       bool   `json:"nx_domain"`
	ResponseTimeMs uint32 `json:"response_time_ms"`
}

var (
	levels  = []string{"info", "warn", "error", "debug", "trace"}
	regions = []string{"us-east-1", "eu-west-1", "eu-west-2", "ap-south-1", "us-west-2"}
)

// Generator produces log records from a seeded source.
type Generator struct {
	rng   *rand.Rand
	base  time.Time
	hosts []string
}

// NewGenerator creates a generator with record timestamps scattered
// around the current time. The same seed reproduces the same corpus up to
// those timestamps; use NewGeneratorAt for full determinism.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorAt(seed, time.Now().UTC())
}

// NewGeneratorAt creates a generator whose record timestamps scatter
// around base, making the corpus fully determined by (seed, base).
func NewGeneratorAt(seed int64, base time.Time) *Generator {
	hosts := make([]string, 20)
	for i := range hosts {
		hosts[i] = fmt.Sprintf("server-%d.region.local", i+1)
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		base:  base,
		hosts: hosts,
	}
}

// Record generates the i-th record.
func (g *Generator) Record(i int) LogRecord {
	offsetMs := g.rng.Intn(60000) - 30000
	ts := g.base.Add(time.Duration(offsetMs) * time.Millisecond)

	answers := make([]Answer, g.rng.Intn(4))
	for j := range answers {
		answers[j] = Answer{
			NxDomain:       g.rng.Float64() < 0.3,
			ResponseTimeMs: uint32(5 + g.rng.Intn(145)),
		}
	}

	// Few distinct tags, so downstream dictionary encodings have
	// something to bite on.
	tags := make([]string, 1+g.rng.Intn(7))
	for j := range tags {
		tags[j] = fmt.Sprintf("tag_%d", 1+g.rng.Intn(49))
	}

	msgID, _ := uuid.NewRandomFromReader(g.rng)
	sessionID, _ := uuid.NewRandomFromReader(g.rng)

	return LogRecord{
		DocID:     int64(i),
		Timestamp: ts.Format(time.RFC3339Nano),
		Level:     levels[g.rng.Intn(len(levels))],
		Message:   fmt.Sprintf("Log message %s for record %d", msgID, i),
		Source: LogSource{
			IP:     fmt.Sprintf("10.0.%d.%d", 1+g.rng.Intn(254), 1+g.rng.Intn(254)),
			Host:   g.hosts[g.rng.Intn(len(g.hosts))],
			Region: regions[g.rng.Intn(len(regions))],
		},
		User: User{
			ID:        fmt.Sprintf("user_%d", 1000+g.rng.Intn(49000)),
			SessionID: sessionID.String(),
			Metrics: UserMetrics{
				LoginTimeMs: uint32(10 + g.rng.Intn(1490)),
				Clicks:      uint32(g.rng.Intn(100)),
				Active:      g.rng.Float64() < 0.75,
			},
		},
		PayloadSize: uint32(common.MinPayloadSize + g.rng.Intn(common.MaxPayloadSize-common.MinPayloadSize)),
		Tags:        tags,
		Answers:     answers,
		Processed:   g.rng.Float64() < 0.9,
	}
}

// Generate produces n records from the given seed.
func Generate(n int, seed int64) []LogRecord {
	return generate(NewGenerator(seed), n)
}

// GenerateAt produces n records fully determined by (seed, base).
func GenerateAt(n int, seed int64, base time.Time) []LogRecord {
	return generate(NewGeneratorAt(seed, base), n)
}

func generate(g *Generator, n int) []LogRecord {
	docs := make([]LogRecord, n)
	for i := range docs {
		docs[i] = g.Record(i)
	}
	return docs
}

// ExtractPayloadSizes pulls the payload-size column as (docID, value)
// pairs in document-id order.
func ExtractPayloadSizes(docs []LogRecord) []ait.DocValue {
	pairs := make([]ait.DocValue, len(docs))
	for i, doc := range docs {
		pairs[i] = ait.DocValue{DocID: uint32(i), Value: float64(doc.PayloadSize)}
	}
	return pairs
}

// ValueColumn pulls the payload-size column as a plain value array for
// the baseline.
func ValueColumn(docs []LogRecord) []float64 {
	values := make([]float64, len(docs))
	for i, doc := range docs {
		values[i] = float64(doc.PayloadSize)
	}
	return values
}

// SortByValue orders pairs ascending by value, as the tree builder
// requires.
func SortByValue(pairs []ait.DocValue) {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Value < pairs[j].Value })
}

// Fingerprint returns the BLAKE3 hash of a value column in document-id
// order. Logging it for both the index input and the baseline proves the
// two consumed identical data.
func Fingerprint(values []float64) string {
	h := blake3.New(32, nil)
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// RandomFilter draws a bitmap of unique document ids covering the given
// percentage of a corpus of numDocs documents.
func RandomFilter(rng *rand.Rand, numDocs, percent int) (*roaring.Bitmap, error) {
	if percent < 0 || percent > 100 {
		return nil, common.ErrInvalidFilterPercent
	}
	target := uint64(numDocs * percent / 100)
	filter := roaring.New()
	for filter.GetCardinality() < target {
		filter.Add(uint32(rng.Intn(numDocs)))
	}
	return filter, nil
}
