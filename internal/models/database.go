package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Cache operations

// ErrCacheConflict reports that another writer inserted the same key first.
// It is fully handled inside the cache store and never reaches callers.
var ErrCacheConflict = bolthold.ErrKeyExists

// ErrNotFound reports a missing record
var ErrNotFound = bolthold.ErrNotFound

// GetCacheEntry retrieves a cache entry by key
func (db *Database) GetCacheEntry(key string) (*CacheEntry, error) {
	var entry CacheEntry
	if err := db.store.Get(key, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// InsertCacheEntry inserts a new cache entry. The key carries a uniqueness
// constraint: a concurrent insert for the same key fails with
// ErrCacheConflict instead of producing a duplicate.
func (db *Database) InsertCacheEntry(entry *CacheEntry) error {
	entry.RefreshedAt = time.Now().UTC()
	return db.store.Insert(entry.Key, entry)
}

// UpdateCacheEntry overwrites an existing entry's payload in place and
// bumps its refresh timestamp
func (db *Database) UpdateCacheEntry(entry *CacheEntry) error {
	entry.RefreshedAt = time.Now().UTC()
	return db.store.Update(entry.Key, entry)
}

// AllCacheEntries returns every cache entry, most recently refreshed first,
// for administrative inspection
func (db *Database) AllCacheEntries() ([]*CacheEntry, error) {
	var entries []*CacheEntry
	if err := db.store.Find(&entries, nil); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RefreshedAt.After(entries[j].RefreshedAt)
	})
	return entries, nil
}

// Watch history operations

// CreateWatchRecord stores a new watch/rating event
func (db *Database) CreateWatchRecord(record *WatchRecord) error {
	record.CreatedAt = time.Now()
	if record.WatchedAt.IsZero() {
		record.WatchedAt = record.CreatedAt
	}
	return db.store.Insert(bolthold.NextSequence(), record)
}

// GetWatchRecordsByUser retrieves all watch records for one user
func (db *Database) GetWatchRecordsByUser(userID string) ([]*WatchRecord, error) {
	var records []*WatchRecord
	err := db.store.Find(&records, bolthold.Where("UserID").Eq(userID))
	return records, err
}
