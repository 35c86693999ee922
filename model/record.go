package model

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/ormkit/ormkit/runtime"
)

// Record is one table row as an object. attrs is the live attribute map,
// original the snapshot at the last load or successful save. exists is true
// iff the row is known to be in storage.
type Record struct {
	typ      *Type
	attrs    map[string]interface{}
	original map[string]interface{}
	exists   bool
}

// Type returns the entity handle the record belongs to.
func (r *Record) Type() *Type {
	return r.typ
}

// Exists reports whether the record is backed by a storage row.
func (r *Record) Exists() bool {
	return r.exists
}

// Get returns an attribute value. The second return distinguishes an unset
// attribute from one set to nil; there is no silent nil for unknown keys.
func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.attrs[key]
	return v, ok
}

// GetString returns a string attribute, or "" when unset or not a string.
func (r *Record) GetString(key string) string {
	if v, ok := r.attrs[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt64 returns an integer attribute, or 0 when unset or not numeric.
func (r *Record) GetInt64(key string) int64 {
	switch n := r.attrs[key].(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// Set writes a single attribute. Unlike Fill it bypasses the fillable
// allow-list; targeted single-column writes are the caller's own intent.
func (r *Record) Set(key string, value interface{}) *Record {
	r.attrs[key] = value
	return r
}

// Fill bulk-writes attributes, keeping only keys that pass the fillable
// check. Disallowed keys are silently dropped.
func (r *Record) Fill(attributes map[string]interface{}) *Record {
	for k, v := range attributes {
		if r.typ.def.fillableAllows(k) {
			r.attrs[k] = v
		}
	}
	return r
}

// PrimaryKeyValue returns the primary key attribute value.
func (r *Record) PrimaryKeyValue() (interface{}, bool) {
	v, ok := r.attrs[r.typ.def.primaryKey()]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// IsDirty reports whether any attribute diverges from the original
// snapshot.
func (r *Record) IsDirty() bool {
	return len(r.DirtyAttributes()) > 0
}

// DirtyAttributes returns the fillable-checked attributes whose value
// differs from the original snapshot, including keys absent from it.
func (r *Record) DirtyAttributes() map[string]interface{} {
	dirty := map[string]interface{}{}
	for k, v := range r.attrs {
		if !r.typ.def.fillableAllows(k) {
			continue
		}
		orig, ok := r.original[k]
		if !ok || !reflect.DeepEqual(orig, v) {
			dirty[k] = v
		}
	}
	return dirty
}

// Save persists the record: an insert when the row does not exist yet, an
// update of the dirty attributes otherwise. The boolean reports whether
// storage acknowledged a change; an update with nothing dirty is a no-op
// success.
func (r *Record) Save(ctx context.Context) (bool, error) {
	if r.exists {
		return r.performUpdate(ctx)
	}
	return r.performInsert(ctx)
}

func (r *Record) performInsert(ctx context.Context) (bool, error) {
	data := map[string]interface{}{}
	for k, v := range r.attrs {
		if r.typ.def.fillableAllows(k) {
			data[k] = v
		}
	}
	if len(data) == 0 {
		return false, runtime.NewQueryError("insert", r.typ.def.table(), runtime.ErrEmptyValues)
	}

	id, err := r.typ.Query().Insert(ctx, data)
	if err != nil {
		return false, err
	}

	r.attrs[r.typ.def.primaryKey()] = id
	r.exists = true
	r.syncOriginal()
	return true, nil
}

func (r *Record) performUpdate(ctx context.Context) (bool, error) {
	id, ok := r.PrimaryKeyValue()
	if !ok {
		return false, runtime.NewQueryError("update", r.typ.def.table(), runtime.ErrMissingPrimaryKey)
	}

	dirty := r.DirtyAttributes()
	if len(dirty) == 0 {
		// Nothing changed; success without a round-trip.
		return true, nil
	}

	affected, err := r.typ.Query().Where(r.typ.def.primaryKey(), id).Update(ctx, dirty)
	if err != nil {
		return false, err
	}
	if affected < 1 {
		return false, nil
	}

	r.syncOriginal()
	return true, nil
}

// Delete removes the backing row. It reports false without error when the
// record does not exist, has no primary key, or the row was already gone.
func (r *Record) Delete(ctx context.Context) (bool, error) {
	if !r.exists {
		return false, nil
	}
	id, ok := r.PrimaryKeyValue()
	if !ok {
		return false, nil
	}

	affected, err := r.typ.Query().Where(r.typ.def.primaryKey(), id).Delete(ctx)
	if err != nil {
		return false, err
	}
	if affected < 1 {
		return false, nil
	}

	r.exists = false
	return true, nil
}

// ToArray returns a copy of the attribute map with hidden columns stripped.
func (r *Record) ToArray() map[string]interface{} {
	out := make(map[string]interface{}, len(r.attrs))
	for k, v := range r.attrs {
		if r.typ.def.isHidden(k) {
			continue
		}
		out[k] = v
	}
	return out
}

// ToJSON serializes ToArray's result.
func (r *Record) ToJSON() (string, error) {
	b, err := json.Marshal(r.ToArray())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Record) syncOriginal() {
	r.original = make(map[string]interface{}, len(r.attrs))
	for k, v := range r.attrs {
		r.original[k] = v
	}
}
