// Package schema loads the JSON Schema documents that describe Demand API
// request shapes and validates outgoing path parameters, query parameters and
// request bodies against them.
//
// Schemas are grouped by Category and keyed by operation name. Operation names
// may be given in Go form ("GetLineItem") or file form ("get_line_item"); both
// resolve to request/<category>/get_line_item.json.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
)

// Category groups schemas by the part of the request they describe.
type Category string

const (
	Body  Category = "body"
	Path  Category = "path"
	Query Category = "query"
)

// Catalog lists the operations that have a schema, per category.
type Catalog map[Category][]string

// DefaultCatalog returns the set of schemas shipped with the client.
func DefaultCatalog() Catalog {
	return Catalog{
		Body: {
			"CreateEvent",
			"CreateProject",
		},
		Path: {
			"GetAttributes",
			"GetEvent",
			"GetFeasibility",
			"GetLineItem",
			"GetLineItemDetailedReport",
			"GetLineItems",
			"GetProject",
			"GetProjectDetailedReport",
		},
		Query: {
			"GetAttributes",
			"GetCountries",
			"GetEvents",
			"GetLineItems",
			"GetProjects",
			"GetSurveyTopics",
		},
	}
}

// ErrUnknownSchema is returned when validation is requested for a schema that
// is not in the registry.
var ErrUnknownSchema = errors.New("no schema registered")

// FileName returns the location of the schema for an operation, relative to
// the root of a schema filesystem.
func FileName(category Category, operation string) string {
	return path.Join("request", string(category), key(operation)+".json")
}

func key(operation string) string {
	return strcase.ToSnake(operation)
}

// Registry holds compiled schemas. It is immutable after NewRegistry returns
// and safe for concurrent use.
type Registry struct {
	schemas map[Category]map[string]*jsonschema.Schema
	logger  hclog.Logger
}

// RegistryConfig configures NewRegistry.
type RegistryConfig struct {
	// Fs holds the schema documents. Defaults to the bundled schemas.
	Fs afero.Fs

	// Catalog lists the schemas to load. Defaults to DefaultCatalog().
	Catalog Catalog

	Logger hclog.Logger
}

// NewRegistry eagerly loads and compiles every schema in the catalog. All
// load failures are collected and returned together.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	if cfg.Fs == nil {
		cfg.Fs = Bundled()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	r := &Registry{
		schemas: make(map[Category]map[string]*jsonschema.Schema, len(cfg.Catalog)),
		logger:  cfg.Logger.Named("schema"),
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	var result *multierror.Error
	for _, category := range sortedCategories(cfg.Catalog) {
		r.schemas[category] = make(map[string]*jsonschema.Schema)
		for _, operation := range cfg.Catalog[category] {
			compiled, err := load(compiler, cfg.Fs, category, operation)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			r.schemas[category][key(operation)] = compiled
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	r.logger.Debug("loaded request schemas",
		"body", len(r.schemas[Body]),
		"path", len(r.schemas[Path]),
		"query", len(r.schemas[Query]),
	)

	return r, nil
}

func load(compiler *jsonschema.Compiler, fsys afero.Fs, category Category, operation string) (*jsonschema.Schema, error) {
	name := FileName(category, operation)

	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("error reading schema %s: %w", name, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("error parsing schema %s: invalid JSON", name)
	}

	url := "mem:///" + name
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error adding schema %s: %w", name, err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("error compiling schema %s: %w", name, err)
	}

	return compiled, nil
}

// Has reports whether a schema is registered for the operation.
func (r *Registry) Has(category Category, operation string) bool {
	_, ok := r.schemas[category][key(operation)]
	return ok
}

// Validate checks data against the schema registered for the operation. Data
// may be any value that marshals to JSON; it is validated in its JSON form.
func (r *Registry) Validate(category Category, operation string, data any) error {
	compiled, ok := r.schemas[category][key(operation)]
	if !ok {
		return &ValidationError{
			Category:  category,
			Operation: key(operation),
			Err:       ErrUnknownSchema,
		}
	}

	instance, err := normalize(data)
	if err != nil {
		return &ValidationError{
			Category:  category,
			Operation: key(operation),
			Err:       err,
		}
	}

	if err := compiled.Validate(instance); err != nil {
		r.logger.Trace("request failed schema validation",
			"category", category,
			"operation", key(operation),
		)
		return &ValidationError{
			Category:  category,
			Operation: key(operation),
			Err:       err,
		}
	}

	return nil
}

// normalize converts data to the generic form produced by decoding JSON, with
// numbers kept as json.Number.
func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error encoding data: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("error decoding data: %w", err)
	}

	return v, nil
}

func sortedCategories(c Catalog) []Category {
	categories := make([]Category, 0, len(c))
	for category := range c {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return strings.Compare(string(categories[i]), string(categories[j])) < 0
	})
	return categories
}
