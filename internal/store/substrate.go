package store

import (
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"zhiyu/internal/providers"
	"zhiyu/internal/store/interfaces"
	"zhiyu/internal/structures"
)

// Substrate is the durable key/value text store the engine serializes
// collections into. Keys address whole collections (or standalone blobs
// like the session); values are JSON documents.
type Substrate interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileSubstrate keeps the full key space in memory and snapshots it to a
// single compressed file on every write. Writes go through a temp file,
// fsync and rename so a crash never leaves a torn database behind.
type FileSubstrate struct {
	mu         sync.RWMutex
	path       string
	data       map[string]json.RawMessage
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileSubstrate(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (Substrate, error) {
	fs := &FileSubstrate{
		path:       conf.Persistence.FilePath,
		data:       make(map[string]json.RawMessage),
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileSubstrate) load() error {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := fs.compressor.Decompress(raw)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(decompressed, &fs.data); err != nil {
		return err
	}
	fs.logger.Infof(providers.TypeApp, "Loaded %d substrate keys from %s", len(fs.data), fs.path)
	return nil
}

func (fs *FileSubstrate) Get(key string) ([]byte, bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	val, ok := fs.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (fs *FileSubstrate) Set(key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	fs.data[key] = stored
	return fs.persistLocked()
}

func (fs *FileSubstrate) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.persistLocked()
}

func (fs *FileSubstrate) persistLocked() error {
	start := time.Now()

	jsonData, err := json.Marshal(fs.data)
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fs.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fs.path); err != nil {
		return err
	}

	fs.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}
