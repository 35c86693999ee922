// Package model provides an active-record layer on top of the query builder.
// Each entity type declares a Definition; instances track their attributes,
// their last-persisted snapshot and whether a backing row exists.
package model

import "strings"

// Definition declares how one entity type maps to a table. Only Name is
// required; the rest fall back to conventional defaults.
type Definition struct {
	// Name is the entity name, e.g. "User". It drives table and foreign
	// key inference.
	Name string

	// Table is the backing table. Empty means the pluralized lowercase
	// name ("User" -> "users"). The pluralization is naive, irregular
	// plurals need an explicit Table.
	Table string

	// PrimaryKey is the primary key column, "id" when empty.
	PrimaryKey string

	// Fillable is the allow-list of columns writable through Fill and
	// Create. Empty means unrestricted.
	Fillable []string

	// Hidden lists columns stripped from ToArray and ToJSON output.
	Hidden []string
}

func (d Definition) table() string {
	if d.Table != "" {
		return d.Table
	}
	return PluralTableName(d.Name)
}

func (d Definition) primaryKey() string {
	if d.PrimaryKey != "" {
		return d.PrimaryKey
	}
	return "id"
}

// fillableAllows reports whether the column may be written through bulk
// fill. An empty fillable list allows everything.
func (d Definition) fillableAllows(column string) bool {
	if len(d.Fillable) == 0 {
		return true
	}
	for _, f := range d.Fillable {
		if f == column {
			return true
		}
	}
	return false
}

func (d Definition) isHidden(column string) bool {
	for _, h := range d.Hidden {
		if h == column {
			return true
		}
	}
	return false
}

// PluralTableName infers a table name from an entity name by lowercasing
// and appending "s".
func PluralTableName(name string) string {
	return strings.ToLower(name) + "s"
}

// ForeignKeyName infers a foreign key column from an entity name, e.g.
// "User" -> "user_id".
func ForeignKeyName(name string) string {
	return strings.ToLower(name) + "_id"
}
