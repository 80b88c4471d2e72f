// Package resolver serves named content feeds through an ordered chain
// of backing stores: the remote blob store first, then the bundled
// local file, then not-found.
package resolver

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/lcac-club/clubsite/internal/domain"
)

// BlobStore is the remote keyed document store. GetJSON distinguishes
// absence (found=false, nil error) from a store failure.
type BlobStore interface {
	GetJSON(ctx context.Context, key string) (json.RawMessage, bool, error)
	PutJSON(ctx context.Context, key string, doc any) error
}

// Resolver resolves feed names to JSON documents. A nil store is a
// valid configuration: resolution then starts at the local tier.
type Resolver struct {
	store   BlobStore
	dataDir string
}

func New(store BlobStore, dataDir string) *Resolver {
	return &Resolver{store: store, dataDir: dataDir}
}

// Resolve validates the raw name against the closed feed enumeration,
// then walks the chain: remote store, local bundled file, not-found.
// Store failures count as "no data" and fall through to the next tier.
func (r *Resolver) Resolve(ctx context.Context, rawName string) (json.RawMessage, error) {
	name, err := domain.ParseFeedName(rawName)
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		doc, found, err := r.store.GetJSON(ctx, name.Key())
		if err != nil {
			log.Printf("resolver: remote tier failed for %s: %v", name, err)
		} else if found {
			return doc, nil
		}
	}

	local := filepath.Join(r.dataDir, name.Key())
	raw, err := os.ReadFile(local)
	if err == nil {
		if json.Valid(raw) {
			return raw, nil
		}
		log.Printf("resolver: local tier has invalid JSON at %s", local)
	} else if !os.IsNotExist(err) {
		log.Printf("resolver: local tier failed for %s: %v", name, err)
	}

	return nil, domain.ErrFeedNotFound
}

// Store validates the name and overwrites the remote document
// unconditionally. There is no merge and no optimistic concurrency;
// admin-token gating happens before this is reached.
func (r *Resolver) Store(ctx context.Context, rawName string, doc json.RawMessage) error {
	name, err := domain.ParseFeedName(rawName)
	if err != nil {
		return err
	}

	if r.store == nil {
		return domain.NewDomainError(domain.ErrCodeInternalError, "remote store not configured")
	}

	if err := r.store.PutJSON(ctx, name.Key(), doc); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to store feed document", err)
	}
	return nil
}
