package debugserver

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
)

// ErrTxNotFound is returned by Get for a transaction hash the store has
// never seen.
var ErrTxNotFound = errors.New("transaction not found")

// TxStore persists the JSON form of loaded transactions keyed by their hash
// so debugging sessions survive server restarts.
type TxStore struct {
	db *badger.DB
}

// OpenTxStore opens (creating if needed) the store in the given directory.
func OpenTxStore(dir string) (*TxStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("unable to open transaction store: %w", err)
	}
	return &TxStore{db: db}, nil
}

// Close releases the underlying database.
func (s *TxStore) Close() error {
	return s.db.Close()
}

// Put stores the JSON form of a transaction under its hash.
func (s *TxStore) Put(hash string, txJSON []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(hash), txJSON)
	})
}

// Get returns the JSON form of a stored transaction.
func (s *TxStore) Get(hash string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(hash))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrTxNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Hashes returns the hashes of every stored transaction.
func (s *TxStore) Hashes() ([]string, error) {
	var hashes []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			hashes = append(hashes, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hashes, nil
}
