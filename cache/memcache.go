package cache

import (
	"encoding/json"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/golang/glog"
)

// Client is a handle to the memcached instance that fronts the document
// store. It is created once at startup and passed explicitly to everything
// that reads or writes cache entries; there is no package-level connection.
type Client struct {
	mc      *memcache.Client
	enabled bool
}

// New creates the cache client. It is the responsibility of whatever has the
// values for this function (usually main.go shortly after reading the config
// file) to call this.
func New(host string, port int64) *Client {
	return &Client{
		mc:      memcache.New(fmt.Sprintf("%s:%d", host, port)),
		enabled: true,
	}
}

// Disabled returns a client whose every operation is a no-op. Useful when
// running without a memcached instance, everything then falls through to the
// store.
func Disabled() *Client {
	return &Client{}
}

// Set puts the given value into the cache as a JSON blob. A timeToLive of
// zero means the entry does not expire.
func (c *Client) Set(key string, data interface{}, timeToLive int32) {
	if !c.enabled {
		return
	}

	b, err := json.Marshal(data)
	if err != nil {
		glog.Errorf("json.Marshal(data) %+v", err)
		return
	}

	err = c.mc.Set(
		&memcache.Item{
			Key:        key,
			Value:      b,
			Expiration: timeToLive, // time in seconds
		},
	)
	if err != nil {
		glog.Errorf("mc.Set() %+v", err)
		return
	}
}

// Get fetches the blob for the given key into dst, which must be a pointer.
// The second return is false on a miss or any decode failure.
func (c *Client) Get(key string, dst interface{}) bool {
	if !c.enabled {
		return false
	}

	item, err := c.mc.Get(key)
	if err != nil {
		// Cache misses are expected, but other errors are logged.
		if err != memcache.ErrCacheMiss {
			glog.Warningf("mc.Get(key) %+v", err)
		}
		return false
	}

	if err := json.Unmarshal(item.Value, dst); err != nil {
		glog.Errorf("json.Unmarshal(item.Value, dst) %+v", err)
		return false
	}

	return true
}

// Delete removes the entry matching the given key from the cache, if it is in
// the cache. Deleting an absent key is not an error.
func (c *Client) Delete(key string) {
	if !c.enabled {
		return
	}

	err := c.mc.Delete(key)
	if err != nil && err != memcache.ErrCacheMiss {
		glog.Warningf("mc.Delete(key) %+v", err)
	}
}

// Expire resets the time-to-live on an existing entry. An absent key is not
// an error.
func (c *Client) Expire(key string, timeToLive int32) {
	if !c.enabled {
		return
	}

	err := c.mc.Touch(key, timeToLive)
	if err != nil && err != memcache.ErrCacheMiss {
		glog.Warningf("mc.Touch(key) %+v", err)
	}
}
