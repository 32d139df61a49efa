package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"csclean/internal/edit"
)

// Current schema version - increment when CachePayload format or the
// cleaning rules change.
const cleanCacheSchemaVersion uint16 = 1

// separatorByte cannot occur in valid UTF-8
var separatorByte = []byte{255}

// CleanCache хранит очищенный текст .cs файлов на диске между запусками.
// Thread-safe for concurrent access.
type CleanCache struct {
	mu  sync.RWMutex
	dir string
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// CachePayload is one cached cleaning result.
type CachePayload struct {
	Schema    uint16
	Options   uint8 // edit.Options as bits
	SourceLen int
	Text      []byte // zstd
}

// OpenCleanCache initializes the cache under $XDG_CACHE_HOME/<app>
// (or ~/.cache/<app>).
func OpenCleanCache(app string) (*CleanCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCleanCacheAt(filepath.Join(base, app))
}

// OpenCleanCacheAt opens a cache rooted at dir.
func OpenCleanCacheAt(dir string) (*CleanCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &CleanCache{dir: dir, enc: enc, dec: dec}, nil
}

func optionBits(opts edit.Options) uint8 {
	var b uint8
	if opts.RemoveUsings {
		b |= 1
	}
	if opts.StripComments {
		b |= 2
	}
	return b
}

// CacheKey hashes the source together with the edit options and the schema.
func CacheKey(content []byte, opts edit.Options) uint64 {
	h := xxhash.New()
	_, _ = h.Write(content)
	_, _ = h.Write(separatorByte)
	_, _ = h.Write([]byte{optionBits(opts), byte(cleanCacheSchemaVersion >> 8), byte(cleanCacheSchemaVersion)})
	return h.Sum64()
}

func (c *CleanCache) pathFor(key uint64) string {
	// подкаталог "clean" — чтобы было что чистить руками
	return filepath.Join(c.dir, "clean", fmt.Sprintf("%016x.mp", key))
}

// Put compresses text and writes it atomically under key.
func (c *CleanCache) Put(key uint64, sourceLen int, opts edit.Options, text []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	// после Rename файла уже нет, ошибку удаления игнорируем
	defer func() { _ = os.Remove(f.Name()) }()

	payload := CachePayload{
		Schema:    cleanCacheSchemaVersion,
		Options:   optionBits(opts),
		SourceLen: sourceLen,
		Text:      c.enc.EncodeAll(text, nil),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get returns the cached text for key. A payload written by another schema
// or for other options counts as a miss.
func (c *CleanCache) Get(key uint64, sourceLen int, opts edit.Options) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cleanCacheSchemaVersion || payload.Options != optionBits(opts) || payload.SourceLen != sourceLen {
		return nil, false, nil
	}
	text, err := c.dec.DecodeAll(payload.Text, nil)
	if err != nil {
		return nil, false, err
	}
	return text, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *CleanCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// Close releases the zstd encoder and decoder.
func (c *CleanCache) Close() error {
	if c == nil {
		return nil
	}
	c.dec.Close()
	return c.enc.Close()
}
