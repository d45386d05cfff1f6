/*
 * Copyright (c) 2023. Nydus Developers. All rights reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package cache stores a rendered analysis keyed by the content digest
// of its input trace file, so repeat runs over an unchanged file skip
// reconstruction entirely. Grounded on the teacher's pkg/store.Database
// bbolt usage, with the key computed via opencontainers/go-digest
// rather than a hand-rolled hash.
package cache

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const (
	databaseFileName = "lktrace-cache.db"
)

var renderBucket = []byte("renders")

// Cache is a render cache rooted at a directory, backed by a single
// bbolt database file.
type Cache struct {
	db *bolt.DB
}

// Open creates or opens the cache database under dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "create cache dir")
	}
	db, err := bolt.Open(filepath.Join(dir, databaseFileName), 0600, &bolt.Options{Timeout: 4 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open cache database")
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(renderBucket)
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "initialize cache database")
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Digest hashes r's full content with the canonical OCI digest
// algorithm, positioning the caller to key a cache lookup before
// parsing begins.
func Digest(r io.Reader) (digest.Digest, error) {
	d, err := digest.FromReader(r)
	if err != nil {
		return "", errors.Wrap(err, "digest trace file")
	}
	return d, nil
}

// Get returns the cached render for key, if present.
func (c *Cache) Get(key digest.Digest) ([]byte, bool, error) {
	var out []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(renderBucket).Get([]byte(key.String()))
		if b == nil {
			return nil
		}
		out = append(out, b...)
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "read cache entry")
	}
	return out, out != nil, nil
}

// Put stores render under key, overwriting any prior entry.
func (c *Cache) Put(key digest.Digest, render []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(renderBucket).Put([]byte(key.String()), render)
	})
}
