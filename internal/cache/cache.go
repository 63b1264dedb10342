// Package cache provides in-memory caching for fill results and cell
// boundaries. Nothing here touches disk; entries live only for the
// configured TTL inside the process.
package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/allegro/bigcache/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/soma-tiles/cellfill/pkg/cell"
	"github.com/soma-tiles/cellfill/pkg/geo"
)

// Config contains cache configuration.
type Config struct {
	ResultCacheSizeMB int
	ResultTTL         time.Duration
	BoundaryCacheSize int
}

// Payloads at or above this size are gzipped before being stored.
const compressThreshold = 4 * 1024

// Stored payloads carry a one-byte header marking the encoding.
const (
	encodingRaw  = 0x00
	encodingGzip = 0x01
)

// Manager manages the fill result and boundary caches.
type Manager struct {
	resultCache   *bigcache.BigCache
	boundaryCache *lru.Cache[string, geo.Ring]
}

// NewManager creates a new cache manager.
func NewManager(cfg Config) (*Manager, error) {
	resultCacheConfig := bigcache.Config{
		Shards:             256,
		LifeWindow:         cfg.ResultTTL,
		CleanWindow:        cfg.ResultTTL / 2,
		MaxEntriesInWindow: 10000,
		MaxEntrySize:       512 * 1024, // 512KB per serialized fill result
		HardMaxCacheSize:   cfg.ResultCacheSizeMB,
		Verbose:            false,
	}

	resultCache, err := bigcache.New(context.Background(), resultCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	boundaryCache, err := lru.New[string, geo.Ring](cfg.BoundaryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create boundary cache: %w", err)
	}

	return &Manager{
		resultCache:   resultCache,
		boundaryCache: boundaryCache,
	}, nil
}

// GetResult retrieves a serialized fill result from cache.
func (m *Manager) GetResult(key string) ([]byte, bool) {
	data, err := m.resultCache.Get(key)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	payload, err := decodePayload(data)
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetResult stores a serialized fill result in cache.
func (m *Manager) SetResult(key string, data []byte) error {
	encoded, err := encodePayload(data)
	if err != nil {
		return err
	}
	return m.resultCache.Set(key, encoded)
}

// GetBoundary retrieves a decoded cell boundary from cache.
func (m *Manager) GetBoundary(tok cell.Token) (geo.Ring, bool) {
	return m.boundaryCache.Get(string(tok))
}

// SetBoundary stores a decoded cell boundary in cache.
func (m *Manager) SetBoundary(tok cell.Token, ring geo.Ring) {
	m.boundaryCache.Add(string(tok), ring)
}

// ResultKey generates a cache key for a fill invocation. The polygon ring
// is hashed, so keys stay short regardless of vertex count, and identical
// inputs always map to the same key.
func ResultKey(ring geo.Ring, level int, ordering geo.Ordering, withID bool) string {
	h := sha256.New()
	var buf [16]byte
	for _, p := range ring {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.Lat))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Lng))
		h.Write(buf[:])
	}
	fmt.Fprintf(h, "|%d|%d|%t", level, ordering, withID)
	return "fill:" + hex.EncodeToString(h.Sum(nil))[:16]
}

func encodePayload(data []byte) ([]byte, error) {
	if len(data) < compressThreshold {
		return append([]byte{encodingRaw}, data...), nil
	}
	var buf bytes.Buffer
	buf.WriteByte(encodingGzip)
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePayload(data []byte) ([]byte, error) {
	switch data[0] {
	case encodingRaw:
		return data[1:], nil
	case encodingGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data[1:]))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return nil, fmt.Errorf("unknown payload encoding %#x", data[0])
	}
}

// Stats returns cache statistics.
func (m *Manager) Stats() map[string]interface{} {
	return map[string]interface{}{
		"result_cache_len":   m.resultCache.Len(),
		"result_cache_cap":   m.resultCache.Capacity(),
		"boundary_cache_len": m.boundaryCache.Len(),
	}
}

// Close closes the cache manager.
func (m *Manager) Close() error {
	return m.resultCache.Close()
}
