// Package natsflavor implements a registry store on a NATS JetStream
// KeyValue bucket.
package natsflavor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/goforj/flavors/flavorcore"
	"github.com/nats-io/nats.go"
)

const defaultPrefix = "flavors"

// KeyValue captures the subset of nats.KeyValue used by the store.
type KeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Create(key string, value []byte) (uint64, error)
	ListKeys(opts ...nats.WatchOpt) (nats.KeyLister, error)
}

// Config configures a NATS JetStream KeyValue-backed registry store.
type Config struct {
	flavorcore.BaseConfig
	KeyValue KeyValue
}

type store struct {
	kv             KeyValue
	prefix         string
	scopePrefixStr string
}

// New builds a NATS-backed flavorcore.Store.
//
// Defaults:
// - Prefix: "flavors" when empty
// - KeyValue: required for real operations (nil allowed, operations return errors)
//
// Example: inject NATS key-value bucket via explicit driver config
//
//	var kv natsflavor.KeyValue // provided by your NATS setup
//	store := natsflavor.New(natsflavor.Config{
//		BaseConfig: flavorcore.BaseConfig{Prefix: "parlor"},
//		KeyValue:   kv,
//	})
//	fmt.Println(store.Driver()) // nats
func New(cfg Config) flavorcore.Store {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &store{
		kv:             cfg.KeyValue,
		prefix:         prefix,
		scopePrefixStr: "p." + encodeKeyPart(prefix) + ".n.",
	}
}

func (s *store) Driver() flavorcore.Driver { return flavorcore.DriverNATS }

func (s *store) Get(_ context.Context, name string) ([]byte, bool, error) {
	if s.kv == nil {
		return nil, false, errors.New("nats registry key-value unavailable")
	}
	entry, err := s.kv.Get(s.entryKey(name))
	if isMiss(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	// A shared bucket may carry tombstones from other writers.
	if entry.Operation() == nats.KeyValueDelete || entry.Operation() == nats.KeyValuePurge {
		return nil, false, nil
	}
	return cloneBytes(entry.Value()), true, nil
}

func (s *store) Add(_ context.Context, name string, body []byte) (bool, error) {
	if s.kv == nil {
		return false, errors.New("nats registry key-value unavailable")
	}
	_, err := s.kv.Create(s.entryKey(name), cloneBytes(body))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, nats.ErrKeyExists) {
		return false, nil
	}
	return false, err
}

func (s *store) Count(ctx context.Context) (int64, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(names)), nil
}

func (s *store) Names(_ context.Context) ([]string, error) {
	if s.kv == nil {
		return nil, errors.New("nats registry key-value unavailable")
	}
	lister, err := s.kv.ListKeys(nats.IgnoreDeletes())
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = lister.Stop() }()

	var names []string
	for key := range lister.Keys() {
		if !strings.HasPrefix(key, s.scopePrefixStr) {
			continue
		}
		name, err := decodeKeyPart(strings.TrimPrefix(key, s.scopePrefixStr))
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *store) entryKey(name string) string {
	return s.scopePrefixStr + encodeKeyPart(name)
}

func isMiss(err error) bool {
	return errors.Is(err, nats.ErrKeyNotFound) || errors.Is(err, nats.ErrKeyDeleted)
}

func encodeKeyPart(part string) string {
	if part == "" {
		return "_"
	}
	return base64.RawURLEncoding.EncodeToString([]byte(part))
}

func decodeKeyPart(part string) (string, error) {
	if part == "_" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return "", fmt.Errorf("decode nats registry key %q: %w", part, err)
	}
	return string(raw), nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
