package kvstore

import (
	"context"

	memdb "github.com/hashicorp/go-memdb"
)

const (
	memdbTable = "kv"
	memdbIndex = "id"
)

type memdbEntry struct {
	Key   string
	Value []byte
}

func memdbSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memdbTable: {
				Name: memdbTable,
				Indexes: map[string]*memdb.IndexSchema{
					memdbIndex: {
						Name:    memdbIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}
}

// MemDB keeps values in an in-process go-memdb table. Nothing survives Close.
type MemDB struct {
	db *memdb.MemDB
}

// NewMemDB creates an empty in-memory store.
func NewMemDB() (*MemDB, error) {
	db, err := memdb.NewMemDB(memdbSchema())
	if err != nil {
		return nil, err
	}
	return &MemDB{db: db}, nil
}

func (m *MemDB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memdbTable, memdbIndex, key)
	if err != nil || raw == nil {
		return nil, false, err
	}
	return clone(raw.(*memdbEntry).Value), true, nil
}

func (m *MemDB) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := m.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(memdbTable, &memdbEntry{Key: key, Value: clone(value)}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (m *MemDB) Close() error { return nil }
