// Package store persists variable values across application runs.
//
// Values are kept JSON-encoded in a bbolt database. A persisted variable is
// created with Var: its initial value is loaded from the database (falling
// back to the supplied default), and every change is written back by the
// next Flush. The host loop typically calls Flush once per tick after
// Vars.Apply, or at shutdown.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/grindlemire/go-vars"
)

// ErrNoVar is returned when a key has no stored value.
var ErrNoVar = errors.New("no such variable")

var bucketVars = []byte("vars")

// DB is a handle to the persistent variable storage.
type DB struct {
	db *bbolt.DB

	mu       sync.Mutex
	flushers []func(vs *vars.Vars) error
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVars)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database. Call Flush first to persist pending changes.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get reads the raw stored value for key.
func (d *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := d.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVars)
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoVar
		}
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Put writes the raw value for key.
func (d *DB) Put(key string, value []byte) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVars)
		return b.Put([]byte(key), value)
	})
}

// Delete removes the stored value for key.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVars)
		return b.Delete([]byte(key))
	})
}

// Flush saves every registered persisted variable whose value changed in
// the current tick. Call after Vars.Apply.
func (d *DB) Flush(vs *vars.Vars) error {
	d.mu.Lock()
	flushers := append([]func(*vars.Vars) error(nil), d.flushers...)
	d.mu.Unlock()

	var errs []error
	for _, fn := range flushers {
		if err := fn(vs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *DB) register(fn func(vs *vars.Vars) error) {
	d.mu.Lock()
	d.flushers = append(d.flushers, fn)
	d.mu.Unlock()
}

// Var creates a persisted variable. The stored value for key is loaded as
// the initial value; def is used when the key is absent. The variable is
// registered with the database so Flush writes it back whenever it is new.
func Var[T any](d *DB, key string, def T) (*vars.Value[T], error) {
	val := def
	raw, err := d.Get(key)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &val); err != nil {
			return nil, fmt.Errorf("failed to decode stored value for %q: %w", key, err)
		}
	case errors.Is(err, ErrNoVar):
		// First run, keep the default.
	default:
		return nil, err
	}

	v := vars.NewValue(val)
	d.register(func(vs *vars.Vars) error {
		nv, ok := v.GetNew(vs)
		if !ok {
			return nil
		}
		data, err := json.Marshal(nv)
		if err != nil {
			return fmt.Errorf("failed to encode value for %q: %w", key, err)
		}
		return d.Put(key, data)
	})
	return v, nil
}
