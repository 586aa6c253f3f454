// Package entity provides the in-memory entity stores and the Hotel aggregate
// that owns them.
//
// Every store keeps insertion order for iteration and a keyed index for
// lookup. Stores do not check cross-entity rules; that is the validator's
// job. They only refuse to overwrite an existing key on Insert and to touch a
// missing key on Update or Delete, returning ErrExists or ErrMissing.
//
// Values are copied in and out; callers never get a pointer into a store.
package entity
