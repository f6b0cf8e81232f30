package models

import (
	h "github.com/microcosm-cc/catalogue/helpers"
)

// Cacher is the key cache capability the catalogue requires: get, set with a
// time-to-live, delete, and reset of expiry. Misses and deletes of absent
// keys are benign, a Cacher never fails an operation.
type Cacher interface {
	Get(key string, dst interface{}) bool
	Set(key string, data interface{}, timeToLive int32)
	Delete(key string)
	Expire(key string, timeToLive int32)
}

// Catalog is the cache-aside read path and write-through/invalidation engine
// over the four catalogue collections. Both the store and the cache are
// injected handles; Catalog holds no connection state of its own and is safe
// for concurrent use.
type Catalog struct {
	store *h.Store
	mc    Cacher
}

// NewCatalog wires the engine to its store and cache
func NewCatalog(store *h.Store, mc Cacher) *Catalog {
	return &Catalog{
		store: store,
		mc:    mc,
	}
}
