/*
Package cache provides a handle to a key/value cache of JSON blobs. It should
not be of any concern to the callee where this cache is, simply that the cache
exists and will speed things up.

Eventual consistency of the cached items is promised, but nothing more. A
failure to talk to the cache is never fatal, the authoritative data always
lives in the document store.
*/
package cache
