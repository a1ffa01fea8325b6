package counter

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucket = []byte("rolling_codes")

// BoltStore keeps rolling codes in a bbolt file, one 4 byte big endian
// value per key. Every Set is its own fsynced transaction.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open rolling code database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key string, def uint32) (uint32, error) {
	code := def
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		if len(v) != 4 {
			return fmt.Errorf("corrupt rolling code for %q: %d bytes", key, len(v))
		}
		code = binary.BigEndian.Uint32(v)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return code, nil
}

func (s *BoltStore) Set(key string, code uint32) error {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, code)
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), v)
	})
	if err == bolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("failed to store rolling code for %q: %w", key, err)
	}
	return nil
}

func (s *BoltStore) Reset(key string, def uint32) error {
	return s.Set(key, def)
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
