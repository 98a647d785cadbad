// Package vault stores PNG images for the stegbit service in an embedded
// pebble database, keyed by KSUID.
package vault

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/stegbit/stegbit/pkg/png"
)

// ErrNotFound means no image is stored under the given id.
var ErrNotFound = errors.New("vault: image not found")

// Vault is a content store for PNG images. Every write validates the image's
// chunk stream first, so nothing unparseable can land in the store.
type Vault struct {
	db *pebble.DB
}

// Open opens (or creates) a vault at the given directory.
func Open(path string) (*Vault, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("vault: open %s: %w", path, err)
	}
	return &Vault{db: db}, nil
}

// Create validates and stores a PNG, returning its new id.
func (v *Vault) Create(data []byte) (ksuid.KSUID, error) {
	if _, err := png.Parse(data); err != nil {
		return ksuid.KSUID{}, err
	}

	id := ksuid.New()
	if err := v.db.Set(id.Bytes(), data, pebble.NoSync); err != nil {
		return ksuid.KSUID{}, err
	}
	return id, nil
}

// Read returns the stored bytes for an image.
func (v *Vault) Read(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := v.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// The pebble buffer is only valid until the closer is released.
	owned := make([]byte, len(data))
	copy(owned, data)
	return owned, nil
}

// Update replaces the stored bytes for an existing image.
func (v *Vault) Update(id ksuid.KSUID, data []byte) error {
	if _, err := png.Parse(data); err != nil {
		return err
	}
	if _, err := v.Read(id); err != nil {
		return err
	}
	return v.db.Set(id.Bytes(), data, pebble.NoSync)
}

// Delete removes an image. Deleting an absent id is not an error.
func (v *Vault) Delete(id ksuid.KSUID) error {
	return v.db.Delete(id.Bytes(), pebble.NoSync)
}

// List returns the ids of every stored image.
func (v *Vault) List() ([]ksuid.KSUID, error) {
	iter, err := v.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			// Skip keys written by anything other than Create.
			continue
		}
		ids = append(ids, id)
	}
	return ids, iter.Error()
}

// Close releases the underlying database.
func (v *Vault) Close() error {
	return v.db.Close()
}
