package models

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	h "github.com/microcosm-cc/catalogue/helpers"
)

// memCollection is an in-memory Collection that understands the filter and
// update shapes the catalogue actually issues: equality, dotted paths into
// embedded arrays, $gte/$lte, $in, regex matching, and $set/$push/$pull
// updates. Reads are counted so tests can prove that a repeated query was
// served from cache.
type memCollection struct {
	docs       []bson.M
	reads      int
	writes     int
	failInsert bool
}

func toDoc(v interface{}) bson.M {
	b, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}

func fromDoc(m bson.M, out interface{}) {
	b, err := bson.Marshal(m)
	if err != nil {
		panic(err)
	}
	if err := bson.Unmarshal(b, out); err != nil {
		panic(err)
	}
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func matchField(doc bson.M, key string, want interface{}) bool {
	if i := strings.Index(key, "."); i >= 0 {
		arr, _ := doc[key[:i]].(primitive.A)
		sub := key[i+1:]
		for _, el := range arr {
			if elm, ok := el.(bson.M); ok && matchField(elm, sub, want) {
				return true
			}
		}
		return false
	}

	got, exists := doc[key]

	switch w := want.(type) {
	case bson.M:
		for op, v := range w {
			switch op {
			case "$gte":
				gn, ok1 := asInt64(got)
				wn, ok2 := asInt64(v)
				if !ok1 || !ok2 || gn < wn {
					return false
				}
			case "$lte":
				gn, ok1 := asInt64(got)
				wn, ok2 := asInt64(v)
				if !ok1 || !ok2 || gn > wn {
					return false
				}
			case "$in":
				rv := reflect.ValueOf(v)
				found := false
				for i := 0; i < rv.Len(); i++ {
					if reflect.DeepEqual(got, rv.Index(i).Interface()) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			default:
				panic(fmt.Sprintf("memCollection: unsupported operator %s", op))
			}
		}
		return true
	case primitive.Regex:
		s, ok := got.(string)
		return ok &&
			strings.Contains(strings.ToLower(s), strings.ToLower(w.Pattern))
	default:
		return exists && reflect.DeepEqual(got, want)
	}
}

func matchDoc(doc bson.M, filter bson.M) bool {
	for key, want := range filter {
		if !matchField(doc, key, want) {
			return false
		}
	}
	return true
}

func applyUpdate(doc bson.M, update bson.M) {
	for op, val := range update {
		switch op {
		case "$set":
			for k, v := range toDoc(val) {
				doc[k] = v
			}
		case "$push":
			for field, v := range val.(bson.M) {
				arr, _ := doc[field].(primitive.A)
				doc[field] = append(arr, toDoc(v))
			}
		case "$pull":
			for field, cond := range val.(bson.M) {
				arr, _ := doc[field].(primitive.A)
				kept := primitive.A{}
				for _, el := range arr {
					if elm, ok := el.(bson.M); ok && matchDoc(elm, cond.(bson.M)) {
						continue
					}
					kept = append(kept, el)
				}
				doc[field] = kept
			}
		default:
			panic(fmt.Sprintf("memCollection: unsupported update %s", op))
		}
	}
}

func (f *memCollection) FindOne(
	_ context.Context,
	filter bson.M,
	out interface{},
) error {
	f.reads++
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			fromDoc(d, out)
			return nil
		}
	}
	return h.ErrNoDocument
}

func (f *memCollection) FindMany(
	_ context.Context,
	filter bson.M,
	out interface{},
) error {
	f.reads++
	rv := reflect.ValueOf(out).Elem()
	sl := reflect.MakeSlice(rv.Type(), 0, 0)
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			nv := reflect.New(rv.Type().Elem())
			fromDoc(d, nv.Interface())
			sl = reflect.Append(sl, nv.Elem())
		}
	}
	rv.Set(sl)
	return nil
}

func (f *memCollection) InsertOne(_ context.Context, doc interface{}) error {
	if f.failInsert {
		return fmt.Errorf("insert was not acknowledged")
	}
	f.writes++
	f.docs = append(f.docs, toDoc(doc))
	return nil
}

func (f *memCollection) UpdateOne(
	_ context.Context,
	filter bson.M,
	update bson.M,
) error {
	f.writes++
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			applyUpdate(d, update)
			return nil
		}
	}
	return nil
}

func (f *memCollection) UpdateMany(
	_ context.Context,
	filter bson.M,
	update bson.M,
) error {
	f.writes++
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			applyUpdate(d, update)
		}
	}
	return nil
}

func (f *memCollection) FindOneAndDelete(
	_ context.Context,
	filter bson.M,
	out interface{},
) error {
	for i, d := range f.docs {
		if matchDoc(d, filter) {
			fromDoc(d, out)
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			f.writes++
			return nil
		}
	}
	return h.ErrNoDocument
}

func (f *memCollection) DeleteMany(
	_ context.Context,
	filter bson.M,
) (int64, error) {
	kept := make([]bson.M, 0, len(f.docs))
	var removed int64
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	f.docs = kept
	if removed > 0 {
		f.writes++
	}
	return removed, nil
}

func (f *memCollection) DistinctIDs(
	_ context.Context,
	filter bson.M,
) ([]primitive.ObjectID, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			id := d["_id"].(primitive.ObjectID)
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (f *memCollection) Count(
	_ context.Context,
	filter bson.M,
) (int64, error) {
	var n int64
	for _, d := range f.docs {
		if matchDoc(d, filter) {
			n++
		}
	}
	return n, nil
}

// memCache is an in-memory Cacher holding JSON blobs, mirroring the real
// client's encoding so that what tests observe is what memcached would hold
type memCache struct {
	entries map[string][]byte
	ttls    map[string]int32
}

func newMemCache() *memCache {
	return &memCache{
		entries: map[string][]byte{},
		ttls:    map[string]int32{},
	}
}

func (c *memCache) Get(key string, dst interface{}) bool {
	b, ok := c.entries[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false
	}
	return true
}

func (c *memCache) Set(key string, data interface{}, timeToLive int32) {
	b, err := json.Marshal(data)
	if err != nil {
		return
	}
	c.entries[key] = b
	c.ttls[key] = timeToLive
}

func (c *memCache) Delete(key string) {
	delete(c.entries, key)
	delete(c.ttls, key)
}

func (c *memCache) Expire(key string, timeToLive int32) {
	if _, ok := c.entries[key]; ok {
		c.ttls[key] = timeToLive
	}
}

func (c *memCache) has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// newTestCatalog wires a Catalog to empty in-memory collections and cache
func newTestCatalog() (*Catalog, *h.Store, *memCache) {
	store := &h.Store{
		Artists:   &memCollection{},
		Albums:    &memCollection{},
		Companies: &memCollection{},
		Songs:     &memCollection{},
	}
	mc := newMemCache()
	return NewCatalog(store, mc), store, mc
}
