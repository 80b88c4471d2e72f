package knowledge

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	gocache "github.com/patrickmn/go-cache"

	"github.com/lcac-club/clubsite/internal/domain"
)

// Merged is one deep-merged knowledge document. Raw keeps the full
// schema-less tree for prompt composition; Typed is the decoded view
// the matcher rules read. Snapshots are immutable once built.
type Merged struct {
	Raw   map[string]any
	Typed domain.Knowledge
}

// Store loads knowledge documents from disk and caches merged
// snapshots process-wide. Refreshes replace the whole snapshot value,
// so concurrent readers never observe a partial merge.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a Store whose snapshots expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{cache: gocache.New(ttl, 2*ttl)}
}

// Load reads the documents at the given paths in order and deep-merges
// them left to right. A missing or unreadable document is logged and
// skipped; Load never fails.
func (s *Store) Load(paths []string) *Merged {
	key := strings.Join(paths, "|")
	if v, found := s.cache.Get(key); found {
		return v.(*Merged)
	}

	merged := map[string]any{}
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			log.Printf("knowledge: skipping %s: %v", p, err)
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Printf("knowledge: skipping %s: %v", p, err)
			continue
		}
		merged = Merge(merged, doc)
	}

	m := &Merged{Raw: merged, Typed: decodeTyped(merged)}
	s.cache.Set(key, m, gocache.DefaultExpiration)
	return m
}

// Merge deep-merges b into a copy of a. Scalars are right-biased,
// sequences concatenate without de-duplication, mappings union
// recursively. Neither input is mutated.
func Merge(a, b map[string]any) map[string]any {
	out := deepCopy(a)
	if err := mergo.Merge(&out, b, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		log.Printf("knowledge: merge error: %v", err)
	}
	return out
}

// deepCopy clones a JSON-sourced tree so merges never alias the
// caller's nested maps.
func deepCopy(m map[string]any) map[string]any {
	out := map[string]any{}
	b, err := json.Marshal(m)
	if err != nil {
		return out
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// decodeTyped projects the raw tree onto the typed knowledge model.
// Unknown keys pass through Raw untouched; decode errors leave the
// affected fields at their zero values.
func decodeTyped(raw map[string]any) domain.Knowledge {
	var k domain.Knowledge
	b, err := json.Marshal(raw)
	if err != nil {
		log.Printf("knowledge: encode merged document: %v", err)
		return k
	}
	if err := json.Unmarshal(b, &k); err != nil {
		log.Printf("knowledge: decode merged document: %v", err)
	}
	return k
}
