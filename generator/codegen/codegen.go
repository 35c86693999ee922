// Package codegen emits Go source for declared entities: a
// model.Definition per model plus constructor and relation helpers.
package codegen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ormkit/ormkit/model"
	"github.com/ormkit/ormkit/schema"
)

// Generate renders the Go source file for a parsed model set.
func Generate(pkg string, models []schema.Model) string {
	var sb strings.Builder

	sb.WriteString("// Code generated by ormkit. DO NOT EDIT.\n")
	sb.WriteString(fmt.Sprintf("package %s\n\n", pkg))
	sb.WriteString("import (\n")
	if hasRelations(models) {
		sb.WriteString("\t\"context\"\n\n")
	}
	sb.WriteString("\t\"github.com/ormkit/ormkit/model\"\n")
	sb.WriteString("\t\"github.com/ormkit/ormkit/runtime/client\"\n")
	sb.WriteString(")\n\n")

	for _, m := range models {
		sb.WriteString(generateDefinition(m))
		sb.WriteString(generateConstructor(m))
		for _, rel := range m.Relations {
			sb.WriteString(generateRelation(m, rel))
		}
	}

	return sb.String()
}

func generateDefinition(m schema.Model) string {
	var sb strings.Builder

	table := m.Table
	if table == "" {
		table = model.PluralTableName(m.Name)
	}
	key := m.PrimaryKey
	if key == "" {
		key = "id"
	}

	sb.WriteString(fmt.Sprintf("// %sDefinition declares the %s entity.\n", m.Name, m.Name))
	sb.WriteString(fmt.Sprintf("var %sDefinition = model.Definition{\n", m.Name))
	sb.WriteString(fmt.Sprintf("\tName:       %q,\n", m.Name))
	sb.WriteString(fmt.Sprintf("\tTable:      %q,\n", table))
	sb.WriteString(fmt.Sprintf("\tPrimaryKey: %q,\n", key))
	if len(m.Fillable) > 0 {
		sb.WriteString(fmt.Sprintf("\tFillable:   []string{%s},\n", quoteList(m.Fillable)))
	}
	if len(m.Hidden) > 0 {
		sb.WriteString(fmt.Sprintf("\tHidden:     []string{%s},\n", quoteList(m.Hidden)))
	}
	sb.WriteString("}\n\n")

	return sb.String()
}

func generateConstructor(m schema.Model) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("// New%sType creates the %s entity handle.\n", m.Name, m.Name))
	sb.WriteString(fmt.Sprintf("func New%sType(c *client.Client) *model.Type {\n", m.Name))
	sb.WriteString(fmt.Sprintf("\treturn model.NewType(c.Executor(), c.Generator(), %sDefinition)\n", m.Name))
	sb.WriteString("}\n\n")

	return sb.String()
}

func generateRelation(m schema.Model, rel schema.Relation) string {
	var sb strings.Builder

	helper := m.Name + exportName(rel.Name)
	opts := relationOptions(rel)

	switch rel.Kind {
	case "has_many":
		sb.WriteString(fmt.Sprintf("// %s resolves the %s relation of a %s record.\n", helper, rel.Name, m.Name))
		sb.WriteString(fmt.Sprintf("func %s(ctx context.Context, rec *model.Record, related *model.Type) ([]*model.Record, error) {\n", helper))
		sb.WriteString(fmt.Sprintf("\treturn rec.HasMany(ctx, related%s)\n", opts))
	case "has_one":
		sb.WriteString(fmt.Sprintf("// %s resolves the %s relation of a %s record.\n", helper, rel.Name, m.Name))
		sb.WriteString(fmt.Sprintf("func %s(ctx context.Context, rec *model.Record, related *model.Type) (*model.Record, error) {\n", helper))
		sb.WriteString(fmt.Sprintf("\treturn rec.HasOne(ctx, related%s)\n", opts))
	case "belongs_to":
		sb.WriteString(fmt.Sprintf("// %s resolves the %s relation of a %s record.\n", helper, rel.Name, m.Name))
		sb.WriteString(fmt.Sprintf("func %s(ctx context.Context, rec *model.Record, related *model.Type) (*model.Record, error) {\n", helper))
		sb.WriteString(fmt.Sprintf("\treturn rec.BelongsTo(ctx, related%s)\n", opts))
	default:
		return ""
	}
	sb.WriteString("}\n\n")

	return sb.String()
}

func relationOptions(rel schema.Relation) string {
	var opts []string
	if rel.ForeignKey != "" {
		opts = append(opts, fmt.Sprintf("model.WithForeignKey(%q)", rel.ForeignKey))
	}
	if rel.OwnerKey != "" {
		if rel.Kind == "belongs_to" {
			opts = append(opts, fmt.Sprintf("model.WithOwnerKey(%q)", rel.OwnerKey))
		} else {
			opts = append(opts, fmt.Sprintf("model.WithLocalKey(%q)", rel.OwnerKey))
		}
	}
	if len(opts) == 0 {
		return ""
	}
	return ", " + strings.Join(opts, ", ")
}

func hasRelations(models []schema.Model) bool {
	for _, m := range models {
		if len(m.Relations) > 0 {
			return true
		}
	}
	return false
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

// exportName uppercases the first rune of a relation field name. Field
// names are full Unicode identifiers, not just ASCII.
func exportName(name string) string {
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
