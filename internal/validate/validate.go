// Package validate checks the two persisted JSON formats spec.md §6
// documents — grid export and word-list export — before they reach the
// Grid Analyzer or the dictionary loader.
package validate

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var (
	gridExportSchema *jsonschema.Schema
	wordListSchema   *jsonschema.Schema
)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	gridExportSchema = compileSchema(compiler, "schemas/grid_export.schema.json", "grid_export.schema.json")
	wordListSchema = compileSchema(compiler, "schemas/word_list.schema.json", "word_list.schema.json")
}

func compileSchema(compiler *jsonschema.Compiler, path, resourceName string) *jsonschema.Schema {
	data, err := schemasFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to read schema %s: %v", path, err))
	}
	if err := compiler.AddResource(resourceName, strings.NewReader(string(data))); err != nil {
		panic(fmt.Sprintf("failed to add schema %s: %v", resourceName, err))
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema %s: %v", resourceName, err))
	}
	return schema
}

// ValidationError represents a single validation error with path context.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no errors"
	}
	var msgs []string
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateGridExportJSON validates a grid-export document against its
// schema: {grid: [][]string, slots: {name: [[r,c], ...]}}.
func ValidateGridExportJSON(data []byte) ValidationErrors {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if err := gridExportSchema.Validate(doc); err != nil {
		return schemaErrorToValidationErrors(err)
	}
	return nil
}

// ValidateWordListJSON validates a word-list-export document: a JSON
// array of uppercase strings.
func ValidateWordListJSON(data []byte) ValidationErrors {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	if err := wordListSchema.Validate(doc); err != nil {
		return schemaErrorToValidationErrors(err)
	}
	return nil
}

func schemaErrorToValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors

	switch e := err.(type) {
	case *jsonschema.ValidationError:
		errs = append(errs, extractValidationErrors(e)...)
	default:
		errs = append(errs, ValidationError{Message: err.Error()})
	}

	return errs
}

func extractValidationErrors(ve *jsonschema.ValidationError) ValidationErrors {
	var errs ValidationErrors

	if ve.Message != "" {
		errs = append(errs, ValidationError{
			Path:    ve.InstanceLocation,
			Message: ve.Message,
		})
	}

	for _, cause := range ve.Causes {
		errs = append(errs, extractValidationErrors(cause)...)
	}

	return errs
}

// GridExport mirrors the persisted grid-export shape for semantic
// validation once the document has passed schema validation.
type GridExport struct {
	Grid  [][]string           `json:"grid"`
	Slots map[string][][2]int `json:"slots"`
}

// ValidateGridExportSemantic checks invariants the schema cannot express:
// the grid is rectangular and every slot's cell references stay inside
// grid bounds (spec.md §3's slot/grid relationship).
func ValidateGridExportSemantic(ge *GridExport) ValidationErrors {
	var errs ValidationErrors

	if len(ge.Grid) == 0 {
		return ValidationErrors{{Path: "/grid", Message: "grid must not be empty"}}
	}

	cols := len(ge.Grid[0])
	for i, row := range ge.Grid {
		if len(row) != cols {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("/grid/%d", i),
				Message: fmt.Sprintf("row has %d columns, expected %d", len(row), cols),
			})
		}
	}
	rows := len(ge.Grid)

	for name, cells := range ge.Slots {
		if len(cells) < 2 {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("/slots/%s", name),
				Message: "slot must have at least two cells",
			})
		}
		for i, rc := range cells {
			r, c := rc[0], rc[1]
			if r < 0 || r >= rows || c < 0 || c >= cols {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("/slots/%s/%d", name, i),
					Message: fmt.Sprintf("cell [%d,%d] is out of grid bounds", r, c),
				})
			}
		}
	}

	return errs
}

// ValidateGridExport performs both schema and semantic validation.
func ValidateGridExport(data []byte) ValidationErrors {
	if errs := ValidateGridExportJSON(data); len(errs) > 0 {
		return errs
	}

	var ge GridExport
	if err := json.Unmarshal(data, &ge); err != nil {
		return ValidationErrors{{Message: fmt.Sprintf("failed to parse grid export: %v", err)}}
	}

	return ValidateGridExportSemantic(&ge)
}
