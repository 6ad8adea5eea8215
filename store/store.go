// Package store is the client's persisted local state: the identity blob,
// the theme blob, and the image cache, all in one SQLite file. The store is
// opened once and handed to its consumers, there is no package-level handle.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

const (
	sqlCreateKvTable = `CREATE TABLE IF NOT EXISTS kv(
                        key varchar(100) NOT NULL PRIMARY KEY,
                        value blob
                        )`
	sqlCreateImagesTable = `CREATE TABLE IF NOT EXISTS images(
                        kind varchar(20) NOT NULL,
                        ref_id int NOT NULL,
                        bytes blob,
                        PRIMARY KEY (kind, ref_id)
                        )`

	sqlUpsertKv   = `INSERT INTO kv(key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	sqlSelectKv   = `SELECT value FROM kv WHERE key = ?`
	sqlDeleteKv   = `DELETE FROM kv WHERE key = ?`
	sqlUpsertImg  = `INSERT INTO images(kind, ref_id, bytes) VALUES (?, ?, ?) ON CONFLICT(kind, ref_id) DO UPDATE SET bytes = excluded.bytes`
	sqlSelectImg  = `SELECT bytes FROM images WHERE kind = ? AND ref_id = ?`
	sqlDeleteImgs = `DELETE FROM images`

	keyIdentity = "userData"
	keyTheme    = "customTheme"
)

// ImageKind tags what an image cache entry belongs to.
type ImageKind string

const (
	UserImage ImageKind = "userId"
	PostImage ImageKind = "postId"
)

// ImageKey addresses one cached image. String() renders the legacy
// "userId:<id>" / "postId:<id>" key form.
type ImageKey struct {
	Kind ImageKind
	Id   int
}

func (k ImageKey) String() string {
	return fmt.Sprintf("%s:%d", k.Kind, k.Id)
}

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the store at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA busy_timeout = 5000")
	db.Exec("PRAGMA journal_mode = WAL")

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	return s.wrapTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(sqlCreateKvTable); err != nil {
			return err
		}
		if _, err := tx.Exec(sqlCreateImagesTable); err != nil {
			return err
		}
		return nil
	})
}

// SaveIdentity persists the encoded identity blob, written synchronously on
// every identity mutation.
func (s *Store) SaveIdentity(data []byte) error {
	return s.putKv(keyIdentity, data)
}

// LoadIdentity returns the persisted identity blob, or nil when none exists.
func (s *Store) LoadIdentity() []byte {
	return s.getKv(keyIdentity)
}

func (s *Store) ClearIdentity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(sqlDeleteKv, keyIdentity)
	return err
}

func (s *Store) SaveTheme(data []byte) error {
	return s.putKv(keyTheme, data)
}

func (s *Store) LoadTheme() []byte {
	return s.getKv(keyTheme)
}

// PutImage caches raw image bytes under a typed key.
func (s *Store) PutImage(key ImageKey, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wrapTransactionLocked(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpsertImg, string(key.Kind), key.Id, data)
		return err
	})
}

// GetImage returns the cached bytes for a key, or nil on a miss.
func (s *Store) GetImage(key ImageKey) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var data []byte
	err := s.db.QueryRow(sqlSelectImg, string(key.Kind), key.Id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		log.Printf("reading image %s: %v", key, err)
		return nil
	}
	return data
}

// ClearImages empties the image cache, used on logout.
func (s *Store) ClearImages() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(sqlDeleteImgs)
	return err
}

func (s *Store) putKv(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wrapTransactionLocked(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpsertKv, key, data)
		return err
	})
}

func (s *Store) getKv(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var data []byte
	err := s.db.QueryRow(sqlSelectKv, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		log.Printf("reading %s: %v", key, err)
		return nil
	}
	return data
}

func (s *Store) wrapTransaction(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wrapTransactionLocked(fn)
}

func (s *Store) wrapTransactionLocked(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
