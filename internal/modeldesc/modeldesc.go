// Package modeldesc defines the plain-text entity grammar used as the
// durable schema artifact. A model description is a sequence of entity
// blocks:
//
//	entity users
//	  id: integer [pk, autoincrement]
//	  email: string [unique, not null]
//
// Parsing is per-entity: a malformed block fails alone and the
// remaining blocks still parse.
package modeldesc

import (
	"fmt"
	"regexp"
	"strings"
)

// Column types accepted by the grammar.
const (
	Integer  = "integer"
	Float    = "float"
	String   = "string"
	Text     = "text"
	Boolean  = "boolean"
	Date     = "date"
	Datetime = "datetime"
)

// Column is one parsed column definition.
type Column struct {
	Name          string
	Type          string
	PrimaryKey    bool
	Unique        bool
	NotNull       bool
	AutoIncrement bool
	// ForeignKey is "table.column" when present, empty otherwise.
	ForeignKey string
}

// Entity is one parsed entity block.
type Entity struct {
	Name    string
	Columns []Column
}

// ParseError describes why one entity block failed to parse.
type ParseError struct {
	Entity  string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("entity %q, line %d: %s", e.Entity, e.Line, e.Message)
}

// Document is the result of parsing a model description. Entities and
// Failures partition the input blocks.
type Document struct {
	Entities []Entity
	Failures []*ParseError
}

var (
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	fkPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\.[A-Za-z_][A-Za-z0-9_]*$`)
)

// validTypes maps accepted type spellings, aliases included, onto the
// canonical grammar type.
var validTypes = map[string]string{
	Integer:     Integer,
	"int":       Integer,
	Float:       Float,
	"decimal":   Float,
	"real":      Float,
	String:      String,
	Text:        Text,
	Boolean:     Boolean,
	"bool":      Boolean,
	Date:        Date,
	Datetime:    Datetime,
	"timestamp": Datetime,
}

// Parse parses a model description. It returns an error only when the
// text contains no entity blocks at all; individual malformed blocks
// are reported in Document.Failures.
func Parse(text string) (*Document, error) {
	doc := &Document{}
	lines := strings.Split(text, "\n")

	var current *Entity
	var currentErr *ParseError

	flush := func() {
		if current == nil {
			return
		}
		switch {
		case currentErr != nil:
			doc.Failures = append(doc.Failures, currentErr)
		case len(current.Columns) == 0:
			doc.Failures = append(doc.Failures, &ParseError{
				Entity:  current.Name,
				Message: "entity has no columns",
			})
		default:
			doc.Entities = append(doc.Entities, *current)
		}
		current = nil
		currentErr = nil
	}

	for i, raw := range lines {
		lineNum := i + 1
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		if name, ok := strings.CutPrefix(trimmed, "entity "); ok && !strings.HasPrefix(line, " ") {
			flush()
			name = strings.TrimSpace(name)
			current = &Entity{Name: name}
			if !identPattern.MatchString(name) {
				currentErr = &ParseError{
					Entity:  name,
					Line:    lineNum,
					Message: fmt.Sprintf("invalid entity name %q", name),
				}
			}
			continue
		}

		if current == nil {
			doc.Failures = append(doc.Failures, &ParseError{
				Line:    lineNum,
				Message: fmt.Sprintf("unexpected line outside entity block: %q", trimmed),
			})
			continue
		}
		if currentErr != nil {
			// Block already failed, skip its remaining lines.
			continue
		}

		col, err := parseColumnLine(trimmed)
		if err != nil {
			currentErr = &ParseError{
				Entity:  current.Name,
				Line:    lineNum,
				Message: err.Error(),
			}
			continue
		}
		current.Columns = append(current.Columns, *col)
	}
	flush()

	if len(doc.Entities) == 0 && len(doc.Failures) == 0 {
		return nil, fmt.Errorf("no entity definitions found")
	}
	return doc, nil
}

// parseColumnLine parses "<name>: <type> [constraint, ...]".
func parseColumnLine(line string) (*Column, error) {
	name, rest, found := strings.Cut(line, ":")
	if !found {
		return nil, fmt.Errorf("malformed column line %q", line)
	}
	name = strings.TrimSpace(name)
	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("invalid column name %q", name)
	}

	rest = strings.TrimSpace(rest)
	typeName := rest
	constraintPart := ""
	if idx := strings.Index(rest, "["); idx >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return nil, fmt.Errorf("unterminated constraint list in %q", line)
		}
		typeName = strings.TrimSpace(rest[:idx])
		constraintPart = rest[idx+1 : len(rest)-1]
	}

	canonical, ok := validTypes[strings.ToLower(typeName)]
	if !ok {
		return nil, fmt.Errorf("unknown column type %q", typeName)
	}

	col := &Column{Name: name, Type: canonical}
	if constraintPart == "" {
		return col, nil
	}

	for _, c := range strings.Split(constraintPart, ",") {
		c = strings.TrimSpace(strings.ToLower(c))
		switch {
		case c == "pk" || c == "primary key":
			col.PrimaryKey = true
		case c == "unique":
			col.Unique = true
		case c == "not null":
			col.NotNull = true
		case c == "autoincrement":
			col.AutoIncrement = true
		case strings.HasPrefix(c, "fk "):
			ref := strings.TrimSpace(strings.TrimPrefix(c, "fk "))
			if !fkPattern.MatchString(ref) {
				return nil, fmt.Errorf("invalid foreign key reference %q", ref)
			}
			col.ForeignKey = ref
		default:
			return nil, fmt.Errorf("unknown constraint %q", c)
		}
	}
	return col, nil
}
