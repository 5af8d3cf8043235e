// Package provision derives a database schema from plain-text requirements.
// It pattern-matches the requirements against common data models (users,
// posts, products, ...) and emits CREATE TABLE SQL for the ones it finds.
// The SQL is returned as text for the caller to review and execute; this
// package never runs it.
package provision

import (
	"regexp"
	"strings"
)

// Field is one column of a derived data model.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Primary  bool   `json:"primary,omitempty"`
	Unique   bool   `json:"unique,omitempty"`
	Default  string `json:"default,omitempty"`
	Foreign  string `json:"foreign,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
}

// Model is one derived data model.
type Model struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Plan is the result of provisioning: the models found, the SQL schema that
// would create them, and the table count.
type Plan struct {
	Models []Model `json:"dataModels"`
	Schema string  `json:"schema"`
	Tables int     `json:"tables"`
}

var patterns = []struct {
	re    *regexp.Regexp
	model string
}{
	{regexp.MustCompile(`(?i)users?|user accounts?`), "users"},
	{regexp.MustCompile(`(?i)posts?|articles?|content`), "posts"},
	{regexp.MustCompile(`(?i)comments?`), "comments"},
	{regexp.MustCompile(`(?i)products?|items?`), "products"},
	{regexp.MustCompile(`(?i)orders?|purchases?`), "orders"},
	{regexp.MustCompile(`(?i)categories?`), "categories"},
	{regexp.MustCompile(`(?i)tags?`), "tags"},
}

// FromRequirements matches requirements text against the known model
// patterns and builds a schema plan for every model mentioned.
func FromRequirements(requirements string) *Plan {
	var models []Model
	for _, p := range patterns {
		if p.re.MatchString(requirements) {
			models = append(models, Model{
				Name:   p.model,
				Fields: defaultFields(p.model),
			})
		}
	}

	schema := GenerateSchema(models)
	return &Plan{
		Models: models,
		Schema: schema,
		Tables: len(models),
	}
}

func defaultFields(model string) []Field {
	switch model {
	case "users":
		return []Field{
			{Name: "id", Type: "uuid", Primary: true, Default: "gen_random_uuid()"},
			{Name: "email", Type: "text", Unique: true},
			{Name: "name", Type: "text"},
			{Name: "created_at", Type: "timestamp", Default: "now()"},
			{Name: "updated_at", Type: "timestamp", Default: "now()"},
		}
	case "posts":
		return []Field{
			{Name: "id", Type: "uuid", Primary: true, Default: "gen_random_uuid()"},
			{Name: "title", Type: "text"},
			{Name: "content", Type: "text"},
			{Name: "user_id", Type: "uuid", Foreign: "users(id)"},
			{Name: "created_at", Type: "timestamp", Default: "now()"},
		}
	case "comments":
		return []Field{
			{Name: "id", Type: "uuid", Primary: true, Default: "gen_random_uuid()"},
			{Name: "content", Type: "text"},
			{Name: "post_id", Type: "uuid", Foreign: "posts(id)"},
			{Name: "user_id", Type: "uuid", Foreign: "users(id)"},
			{Name: "created_at", Type: "timestamp", Default: "now()"},
		}
	case "products":
		return []Field{
			{Name: "id", Type: "uuid", Primary: true, Default: "gen_random_uuid()"},
			{Name: "name", Type: "text"},
			{Name: "description", Type: "text"},
			{Name: "price", Type: "decimal"},
			{Name: "created_at", Type: "timestamp", Default: "now()"},
		}
	default:
		return []Field{
			{Name: "id", Type: "uuid", Primary: true, Default: "gen_random_uuid()"},
			{Name: "created_at", Type: "timestamp", Default: "now()"},
		}
	}
}

// GenerateSchema renders CREATE TABLE statements for the given models, one
// statement per model, separated by blank lines.
func GenerateSchema(models []Model) string {
	var statements []string
	for _, m := range models {
		var b strings.Builder
		b.WriteString("CREATE TABLE IF NOT EXISTS ")
		b.WriteString(m.Name)
		b.WriteString(" (\n")

		defs := make([]string, 0, len(m.Fields))
		for _, f := range m.Fields {
			var d strings.Builder
			d.WriteString("  ")
			d.WriteString(f.Name)
			d.WriteString(" ")
			d.WriteString(strings.ToUpper(f.Type))
			if f.Primary {
				d.WriteString(" PRIMARY KEY")
			}
			if f.Unique {
				d.WriteString(" UNIQUE")
			}
			if f.Default != "" {
				d.WriteString(" DEFAULT ")
				d.WriteString(f.Default)
			}
			if f.Foreign != "" {
				d.WriteString(" REFERENCES ")
				d.WriteString(f.Foreign)
			}
			if !f.Nullable && !f.Primary {
				d.WriteString(" NOT NULL")
			}
			defs = append(defs, d.String())
		}

		b.WriteString(strings.Join(defs, ",\n"))
		b.WriteString("\n);")
		statements = append(statements, b.String())
	}
	return strings.Join(statements, "\n\n")
}
