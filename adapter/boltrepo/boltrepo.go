// Package boltrepo supplies a bolt backed mvc.Resource implementation.
//
// It exists so controller specs can graduate from doubles to a real
// collaborator without changing the controller: the repository satisfies the
// same capability contract the macros assert against. Entities are stored
// gob encoded in a per type bucket, keyed by a bucket sequence number.
package boltrepo

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/boltdb/bolt"

	"go.llib.dev/ctrlspec/mvc"
)

// ErrNotStored is wrapped by Save when the entity could not be written.
var ErrNotStored = errors.New("boltrepo: entity was not stored")

// Open opens (or creates) the bolt database at the given path and returns a
// repository for ENT stored within it.
func Open[ENT any](path string) (*Repository[ENT], error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &Repository[ENT]{DB: db}, nil
}

// Repository is a bolt backed mvc.Resource.
type Repository[ENT any] struct {
	DB *bolt.DB
	// Validate optionally rejects an entity before it is stored.
	// A rejection makes Save report false without an error,
	// matching the capability contract's business failure path.
	Validate func(ENT) error
}

// Close releases the database file lock.
func (r *Repository[ENT]) Close() error {
	return r.DB.Close()
}

func (r *Repository[ENT]) FindAll(ctx context.Context, c mvc.Criteria) ([]ENT, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var collection []ENT
	err := r.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(r.bucketName())
		if bucket == nil {
			return nil
		}
		var skipped int
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			ent, err := r.decode(v)
			if err != nil {
				return err
			}
			if !matches(ent, c.Filter) {
				continue
			}
			if skipped < c.Offset {
				skipped++
				continue
			}
			collection = append(collection, ent)
			if c.Limit > 0 && len(collection) == c.Limit {
				break
			}
		}
		return nil
	})
	return collection, err
}

func (r *Repository[ENT]) FindByID(ctx context.Context, id string) (ENT, bool, error) {
	var (
		ent   ENT
		found bool
	)
	if err := ctx.Err(); err != nil {
		return ent, false, err
	}
	key, err := idToKey(id)
	if err != nil {
		return ent, false, nil
	}
	err = r.DB.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(r.bucketName())
		if bucket == nil {
			return nil
		}
		value := bucket.Get(key)
		if value == nil {
			return nil
		}
		decoded, err := r.decode(value)
		if err != nil {
			return err
		}
		ent, found = decoded, true
		return nil
	})
	return ent, found, err
}

// Init builds an unpersisted entity from the submitted attributes.
// Attribute names match exported field names; unknown attributes are ignored.
func (r *Repository[ENT]) Init(attrs mvc.Attrs) ENT {
	ptr := new(ENT)
	rv := reflect.ValueOf(ptr).Elem()
	for name, value := range attrs {
		field := rv.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		av := reflect.ValueOf(value)
		if !av.IsValid() || !av.Type().AssignableTo(field.Type()) {
			continue
		}
		field.Set(av)
	}
	return *ptr
}

func (r *Repository[ENT]) Save(ctx context.Context, ptr *ENT) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if ptr == nil {
		return false, fmt.Errorf("%w: nil entity pointer", ErrNotStored)
	}
	if r.Validate != nil {
		if err := r.Validate(*ptr); err != nil {
			return false, nil
		}
	}
	err := r.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(r.bucketName())
		if err != nil {
			return err
		}
		key, err := r.keyFor(bucket, ptr)
		if err != nil {
			return err
		}
		value, err := r.encode(*ptr)
		if err != nil {
			return err
		}
		return bucket.Put(key, value)
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrNotStored, err)
	}
	return true, nil
}

func (r *Repository[ENT]) keyFor(bucket *bolt.Bucket, ptr *ENT) ([]byte, error) {
	if id, ok := mvc.LookupID(*ptr); ok && id != "" {
		return idToKey(id)
	}
	seq, err := bucket.NextSequence()
	if err != nil {
		return nil, err
	}
	if err := mvc.SetID(ptr, strconv.FormatUint(seq, 10)); err != nil {
		return nil, err
	}
	return uintToKey(seq), nil
}

func (r *Repository[ENT]) bucketName() []byte {
	return []byte(reflect.TypeOf(*new(ENT)).Name())
}

func (r *Repository[ENT]) encode(ent ENT) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Repository[ENT]) decode(value []byte) (ENT, error) {
	var ent ENT
	err := gob.NewDecoder(bytes.NewReader(value)).Decode(&ent)
	return ent, err
}

func matches(ent any, filter mvc.Filter) bool {
	if len(filter) == 0 {
		return true
	}
	rv := reflect.ValueOf(ent)
	for name, expected := range filter {
		field := rv.FieldByName(name)
		if !field.IsValid() {
			return false
		}
		if !reflect.DeepEqual(field.Interface(), expected) {
			return false
		}
	}
	return true
}

func idToKey(id string) ([]byte, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, err
	}
	return uintToKey(n), nil
}

func uintToKey(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

var _ mvc.Resource[struct{}] = (*Repository[struct{}])(nil)
