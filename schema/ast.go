// Package schema parses ormkit entity definition files (.okd).
//
// A definition file declares one model block per entity:
//
//	model User {
//	    table "users"
//	    key "id"
//	    fillable name, email, age, password
//	    hidden password
//	    has_many posts Post
//	    has_one profile Profile foreign_key "user_id"
//	}
//
// table and key are optional; they default to the pluralized lowercase
// model name and "id".
package schema

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the raw parse tree of one definition file.
type File struct {
	Pos    lexer.Position
	Models []*ModelDecl `@@*`
}

// ModelDecl is a raw model block.
type ModelDecl struct {
	Pos     lexer.Position
	Name    string   `"model" @Ident`
	Entries []*Entry `"{" @@* "}"`
}

// Entry is one declaration inside a model block.
type Entry struct {
	Pos      lexer.Position
	Table    *string       `  "table" @String`
	Key      *string       `| "key" @String`
	Fillable []string      `| "fillable" @Ident ("," @Ident)*`
	Hidden   []string      `| "hidden" @Ident ("," @Ident)*`
	Relation *RelationDecl `| @@`
}

// RelationDecl is a raw relation declaration: kind, field name, target
// model, and optional key overrides.
type RelationDecl struct {
	Pos        lexer.Position
	Kind       string  `@("has_many" | "has_one" | "belongs_to")`
	Name       string  `@Ident`
	Target     string  `@Ident`
	ForeignKey *string `("foreign_key" @String)?`
	OwnerKey   *string `("owner_key" @String)?`
}

// Model is the resolved declaration of one entity.
type Model struct {
	Name       string
	Table      string // empty means inferred
	PrimaryKey string // empty means "id"
	Fillable   []string
	Hidden     []string
	Relations  []Relation
}

// Relation is a resolved relation declaration.
type Relation struct {
	Kind       string // "has_many", "has_one" or "belongs_to"
	Name       string // field name, e.g. "posts"
	Target     string // related model name, e.g. "Post"
	ForeignKey string // empty means inferred
	OwnerKey   string // empty means the target's primary key
}

// convertFile flattens the raw parse tree into resolved models.
func convertFile(f *File) []Model {
	models := make([]Model, 0, len(f.Models))
	for _, decl := range f.Models {
		m := Model{Name: decl.Name}
		for _, e := range decl.Entries {
			switch {
			case e.Table != nil:
				m.Table = *e.Table
			case e.Key != nil:
				m.PrimaryKey = *e.Key
			case len(e.Fillable) > 0:
				m.Fillable = append(m.Fillable, e.Fillable...)
			case len(e.Hidden) > 0:
				m.Hidden = append(m.Hidden, e.Hidden...)
			case e.Relation != nil:
				rel := Relation{
					Kind:   e.Relation.Kind,
					Name:   e.Relation.Name,
					Target: e.Relation.Target,
				}
				if e.Relation.ForeignKey != nil {
					rel.ForeignKey = *e.Relation.ForeignKey
				}
				if e.Relation.OwnerKey != nil {
					rel.OwnerKey = *e.Relation.OwnerKey
				}
				m.Relations = append(m.Relations, rel)
			}
		}
		models = append(models, m)
	}
	return models
}
