package schema

import (
	"fmt"

	"github.com/ormkit/ormkit/model"
)

// Validate checks a parsed model set for declaration conflicts: duplicate
// model names, duplicate table names, and relations pointing at undeclared
// models. All findings are returned, not just the first.
func Validate(models []Model) []error {
	var errs []error

	byName := map[string]bool{}
	byTable := map[string]string{}

	for _, m := range models {
		if byName[m.Name] {
			errs = append(errs, fmt.Errorf("model %s declared more than once", m.Name))
		}
		byName[m.Name] = true

		table := m.Table
		if table == "" {
			table = model.PluralTableName(m.Name)
		}
		if owner, ok := byTable[table]; ok {
			errs = append(errs, fmt.Errorf("models %s and %s both map to table %s", owner, m.Name, table))
		} else {
			byTable[table] = m.Name
		}
	}

	for _, m := range models {
		for _, rel := range m.Relations {
			if !byName[rel.Target] {
				errs = append(errs, fmt.Errorf("model %s: relation %s targets undeclared model %s", m.Name, rel.Name, rel.Target))
			}
		}
	}

	return errs
}
