// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb is the goleveldb backed kv.Store holding ledger records.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/ledger/kv"
)

var _ kv.Store = (*LevelDB)(nil)

const minCacheMB = 16

// Options configures a persistent instance.
type Options struct {
	CacheSize              int // megabytes
	OpenFilesCacheCapacity int
	// ReadOnly opens an existing db without taking write access, for offline inspection.
	ReadOnly bool
}

var (
	writeOpt = opt.WriteOptions{}
	// record batches are the unit of commit, they must survive a crash
	syncOpt = opt.WriteOptions{Sync: true}
	readOpt = opt.ReadOptions{}
)

// LevelDB wraps a goleveldb instance.
type LevelDB struct {
	db       *leveldb.DB
	readOnly bool
}

// New opens the db at path, creating it unless opts.ReadOnly is set.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, opts.ReadOnly)
	if err != nil {
		return nil, errors.Wrap(err, "open level db storage")
	}
	return open(stg, opts)
}

// NewMem creates a db kept in memory, for the volatile ledger and tests.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, minCacheMB)
	openFiles := max(opts.OpenFilesCacheCapacity, 16)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFiles,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
		ReadOnly:               opts.ReadOnly,
		ErrorIfMissing:         opts.ReadOnly,
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, readOnly: opts.ReadOnly}, nil
}

// IsNotFound reports whether err is the missing key error of Get.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// IsReadOnly reports whether writes are refused.
func (ldb *LevelDB) IsReadOnly() bool {
	return ldb.readOnly
}

// Get returns an error checked by IsNotFound when key is absent.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	val, err := ldb.db.Get(key, &readOpt)
	metricAccess().AddWithLabel(1, map[string]string{"op": "get"})
	return val, err
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	metricAccess().AddWithLabel(1, map[string]string{"op": "put"})
	return ldb.db.Put(key, value, &writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	metricAccess().AddWithLabel(1, map[string]string{"op": "delete"})
	return ldb.db.Delete(key, &writeOpt)
}

// Stats returns the goleveldb statistics table.
func (ldb *LevelDB) Stats() (string, error) {
	return ldb.db.GetProperty("leveldb.stats")
}

// Close closes the db, later operations fail.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// Bulk creates a batch whose ops are written atomically and synced on Write.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &bulk{ldb.db, &leveldb.Batch{}}
}

// Iterate creates an iterator over the key range.
func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{
		Start: r.Start,
		Limit: r.Limit,
	}, &readOpt)
}
