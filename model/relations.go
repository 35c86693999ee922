package model

import (
	"context"
)

// relationKeys carries per-call key overrides for relation resolution.
type relationKeys struct {
	foreignKey string
	ownerKey   string
	localKey   string
}

// RelationOption overrides an inferred relation key for one call.
type RelationOption func(*relationKeys)

// WithForeignKey overrides the inferred foreign key column.
func WithForeignKey(column string) RelationOption {
	return func(k *relationKeys) { k.foreignKey = column }
}

// WithOwnerKey overrides the owner key column of a belongs-to relation.
func WithOwnerKey(column string) RelationOption {
	return func(k *relationKeys) { k.ownerKey = column }
}

// WithLocalKey overrides the local key column of a has-many/has-one
// relation.
func WithLocalKey(column string) RelationOption {
	return func(k *relationKeys) { k.localKey = column }
}

func applyOptions(opts []RelationOption) relationKeys {
	var keys relationKeys
	for _, opt := range opts {
		opt(&keys)
	}
	return keys
}

// BelongsTo resolves the owning record of a many-to-one relation: the
// related row whose owner key equals this record's foreign key value. The
// foreign key defaults to lowercase(related name) + "_id" on this record,
// the owner key to the related primary key. An unset foreign key resolves
// to nil without querying.
func (r *Record) BelongsTo(ctx context.Context, related *Type, opts ...RelationOption) (*Record, error) {
	keys := applyOptions(opts)
	fk := keys.foreignKey
	if fk == "" {
		fk = ForeignKeyName(related.def.Name)
	}
	ownerKey := keys.ownerKey
	if ownerKey == "" {
		ownerKey = related.def.primaryKey()
	}

	fkValue, ok := r.Get(fk)
	if !ok || fkValue == nil {
		return nil, nil
	}

	row, err := related.Query().Where(ownerKey, fkValue).First(ctx)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return related.Hydrate(row), nil
}

// HasMany resolves a one-to-many relation: all related rows whose foreign
// key equals this record's local key value. The foreign key defaults to
// lowercase(this entity's name) + "_id" on the related table, the local key
// to this record's primary key. An unset local key resolves to an empty
// slice without querying.
func (r *Record) HasMany(ctx context.Context, related *Type, opts ...RelationOption) ([]*Record, error) {
	keys := applyOptions(opts)
	fk := keys.foreignKey
	if fk == "" {
		fk = ForeignKeyName(r.typ.def.Name)
	}
	localKey := keys.localKey
	if localKey == "" {
		localKey = r.typ.def.primaryKey()
	}

	localValue, ok := r.Get(localKey)
	if !ok || localValue == nil {
		return []*Record{}, nil
	}

	rows, err := related.Query().Where(fk, localValue).Get(ctx)
	if err != nil {
		return nil, err
	}
	return related.HydrateAll(rows), nil
}

// HasOne is HasMany truncated to the first match, nil when there is none.
func (r *Record) HasOne(ctx context.Context, related *Type, opts ...RelationOption) (*Record, error) {
	keys := applyOptions(opts)
	fk := keys.foreignKey
	if fk == "" {
		fk = ForeignKeyName(r.typ.def.Name)
	}
	localKey := keys.localKey
	if localKey == "" {
		localKey = r.typ.def.primaryKey()
	}

	localValue, ok := r.Get(localKey)
	if !ok || localValue == nil {
		return nil, nil
	}

	row, err := related.Query().Where(fk, localValue).First(ctx)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return related.Hydrate(row), nil
}
