package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	documentBucket   = []byte("Documents")
	quarantineBucket = []byte("Quarantine")
)

// BoltBackend stores the document under one key of a bbolt bucket.
type BoltBackend struct {
	db  *bbolt.DB
	key []byte
}

func NewBoltBackend(path, name string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt file %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{documentBucket, quarantineBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltBackend{db: db, key: []byte(name)}, nil
}

func (b *BoltBackend) Read(_ context.Context) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(documentBucket).Get(b.key)
		if v == nil {
			return ErrNoDocument
		}
		// v is only valid inside the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (b *BoltBackend) Write(_ context.Context, data []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(documentBucket).Put(b.key, data)
	})
}

func (b *BoltBackend) Quarantine(_ context.Context, data []byte) (string, error) {
	key := quarantineName(string(b.key), time.Now())
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(quarantineBucket).Put([]byte(key), data)
	})
	return key, err
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
