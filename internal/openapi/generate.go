package openapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"baseware/internal/config"
	"baseware/internal/response"
)

const (
	jsonContent   = "application/json"
	refPrefix     = "#/components/schemas/"
	defsPrefix    = "#/$defs/"
	linksProperty = "_links"
	apiPrefix     = "/api/v1"
)

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	pathParamRe = regexp.MustCompile(`\{(\w+)\}`)
	queryTypes  = map[string]string{"page": "integer", "size": "integer"}
)

type generator struct {
	reflector *jsonschema.Reflector
	schemas   map[string]*jsonschema.Schema
	types     map[string]reflect.Type
	conflicts []string
}

func newGenerator() *generator {
	g := &generator{
		schemas: map[string]*jsonschema.Schema{},
		types:   map[string]reflect.Type{},
	}
	g.reflector = &jsonschema.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
		Mapper:                    mapType,
		Namer:                     g.name,
	}
	return g
}

func mapType(t reflect.Type) *jsonschema.Schema {
	if t == uuidType {
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	}
	return nil
}

// name keys components by bare type name and records clashes between
// packages.
func (g *generator) name(t reflect.Type) string {
	name := t.Name()
	if name == "" {
		return ""
	}
	if prev, ok := g.types[name]; ok && prev != t {
		g.conflicts = append(g.conflicts, fmt.Sprintf("%s (%s and %s)", name, prev.PkgPath(), t.PkgPath()))
	}
	g.types[name] = t
	return name
}

// Generate builds the document for ops. Payload and body types become
// components; every 200 response is an envelope around the payload shape.
func Generate(cfg config.OpenAPIConfig, ops []Operation) (*Document, error) {
	g := newGenerator()
	doc := &Document{
		OpenAPI: Version,
		Info: Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     cfg.Version,
		},
		Paths: orderedmap.New[string, PathItem](),
	}
	if cfg.ContactName != "" || cfg.ContactEmail != "" {
		doc.Info.Contact = &Contact{Name: cfg.ContactName, Email: cfg.ContactEmail}
	}
	if cfg.ServerURL != "" {
		doc.Servers = []Server{{URL: cfg.ServerURL}}
	}
	if cfg.DocsURL != "" {
		doc.ExternalDocs = &ExternalDocs{Description: "API documentation", URL: cfg.DocsURL}
	}

	var security []SecurityRequirement
	if cfg.SecurityName != "" {
		security = []SecurityRequirement{{cfg.SecurityName: {}}}
		doc.Components.SecuritySchemes = map[string]SecurityScheme{
			cfg.SecurityName: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}
	}

	seenIDs := map[string]string{}
	tags := map[string]struct{}{}
	for _, op := range ops {
		method := strings.ToLower(op.Method)
		item, _ := doc.Paths.Get(op.Path)
		if item == nil {
			item = PathItem{}
		}
		if _, dup := item[method]; dup {
			return nil, fmt.Errorf("openapi: duplicate operation %s %s", op.Method, op.Path)
		}

		built, err := g.operation(op)
		if err != nil {
			return nil, err
		}
		if prev, dup := seenIDs[built.OperationID]; dup {
			return nil, fmt.Errorf("openapi: operation id %s used by %s and %s %s", built.OperationID, prev, op.Method, op.Path)
		}
		seenIDs[built.OperationID] = op.Method + " " + op.Path
		if op.Secured {
			built.Security = security
		}
		if op.Tag != "" {
			tags[op.Tag] = struct{}{}
		}

		item[method] = built
		doc.Paths.Set(op.Path, item)
	}

	if len(g.conflicts) > 0 {
		return nil, fmt.Errorf("openapi: component name clash: %s", strings.Join(g.conflicts, ", "))
	}

	for _, name := range slices.Sorted(maps.Keys(tags)) {
		doc.Tags = append(doc.Tags, Tag{Name: name})
	}

	doc.Components.Schemas = orderedmap.New[string, *jsonschema.Schema]()
	for _, name := range slices.Sorted(maps.Keys(g.schemas)) {
		doc.Components.Schemas.Set(name, g.schemas[name])
	}
	stripLinks(doc.Components.Schemas)

	slog.Debug("openapi document generated", "operations", len(ops), "components", doc.Components.Schemas.Len())
	return doc, nil
}

// JSON renders the document.
func (d *Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}

func (g *generator) operation(op Operation) (*OperationObject, error) {
	out := &OperationObject{
		Summary:     op.Summary,
		OperationID: operationID(op),
		Parameters:  parameters(op),
		Responses:   orderedmap.New[string, Response](),
	}
	if op.Tag != "" {
		out.Tags = []string{op.Tag}
	}

	if op.Body != nil {
		ref, err := g.component(op.Body)
		if err != nil {
			return nil, err
		}
		out.RequestBody = &RequestBody{
			Required: true,
			Content:  map[string]MediaType{jsonContent: {Schema: ref}},
		}
	}

	if op.Payload != nil {
		data, err := g.data(op)
		if err != nil {
			return nil, err
		}
		out.Responses.Set("200", Response{
			Description: "OK",
			Content:     map[string]MediaType{jsonContent: {Schema: envelope(data)}},
		})
	}
	out.Responses.Set("default", Response{
		Description: "Error",
		Content:     map[string]MediaType{jsonContent: {Schema: errorEnvelope()}},
	})
	return out, nil
}

// component reflects v into the component set and returns a reference to it.
func (g *generator) component(v any) (*jsonschema.Schema, error) {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, fmt.Errorf("openapi: payload %v must be a named struct", t)
	}

	root := g.reflector.ReflectFromType(t)
	for name, def := range root.Definitions {
		if _, ok := g.schemas[name]; ok {
			continue
		}
		rewriteRefs(def)
		g.schemas[name] = def
	}
	return ref(g.name(t)), nil
}

func (g *generator) data(op Operation) (*jsonschema.Schema, error) {
	item, err := g.component(op.Payload)
	if err != nil {
		return nil, err
	}

	switch op.Shape {
	case ShapeObject, "":
		return item, nil
	case ShapeList:
		return arrayOf(item), nil
	case ShapePage:
		props := jsonschema.NewProperties()
		props.Set("content", arrayOf(item))
		props.Set("totalElements", integer())
		props.Set("totalPages", integer())
		props.Set("size", integer())
		props.Set("number", integer())
		return object(props), nil
	case ShapeHateoasPage:
		link, err := g.component(response.Link{})
		if err != nil {
			return nil, err
		}
		meta := jsonschema.NewProperties()
		meta.Set("size", integer())
		meta.Set("totalElements", integer())
		meta.Set("totalPages", integer())
		meta.Set("number", integer())

		props := jsonschema.NewProperties()
		props.Set("content", arrayOf(item))
		props.Set("page", object(meta))
		props.Set(linksProperty, &jsonschema.Schema{Type: "object", AdditionalProperties: link})
		return object(props), nil
	}
	return nil, fmt.Errorf("openapi: unknown shape %q for %s %s", op.Shape, op.Method, op.Path)
}

func envelope(data *jsonschema.Schema) *jsonschema.Schema {
	props := envelopeBase()
	props.Set("data", data)
	s := object(props)
	s.Required = []string{"message", "result", "code"}
	return s
}

func errorEnvelope() *jsonschema.Schema {
	props := envelopeBase()
	props.Set("errors", &jsonschema.Schema{Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "string"}})
	s := object(props)
	s.Required = []string{"message", "result", "code"}
	return s
}

func envelopeBase() *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	props := jsonschema.NewProperties()
	props.Set("message", &jsonschema.Schema{Type: "string"})
	props.Set("result", &jsonschema.Schema{Type: "boolean"})
	props.Set("code", integer())
	return props
}

func ref(name string) *jsonschema.Schema { return &jsonschema.Schema{Ref: refPrefix + name} }

func integer() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} }

func arrayOf(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

func object(props *orderedmap.OrderedMap[string, *jsonschema.Schema]) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props}
}

// stripLinks drops the _links property from every component. Envelopes are
// built inline, so a HATEOAS page keeps its own.
func stripLinks(schemas *orderedmap.OrderedMap[string, *jsonschema.Schema]) {
	for pair := schemas.Oldest(); pair != nil; pair = pair.Next() {
		s := pair.Value
		if s.Properties != nil {
			s.Properties.Delete(linksProperty)
		}
		s.Required = slices.DeleteFunc(s.Required, func(name string) bool { return name == linksProperty })
	}
}

func rewriteRefs(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	if name, ok := strings.CutPrefix(s.Ref, defsPrefix); ok {
		s.Ref = refPrefix + name
	}
	for _, sub := range subschemas(s) {
		rewriteRefs(sub)
	}
}

func subschemas(s *jsonschema.Schema) []*jsonschema.Schema {
	out := []*jsonschema.Schema{s.Items, s.AdditionalProperties, s.Not, s.Contains}
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.OneOf...)
	out = append(out, s.PrefixItems...)
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, pair.Value)
		}
	}
	for _, p := range s.PatternProperties {
		out = append(out, p)
	}
	return out
}

func parameters(op Operation) []Parameter {
	var params []Parameter
	for _, m := range pathParamRe.FindAllStringSubmatch(op.Path, -1) {
		params = append(params, Parameter{
			Name:     m[1],
			In:       "path",
			Required: true,
			Schema:   &jsonschema.Schema{Type: "string", Format: "uuid"},
		})
	}
	for _, name := range op.Query {
		typ, ok := queryTypes[name]
		if !ok {
			typ = "string"
		}
		schema := &jsonschema.Schema{Type: typ}
		if name == "filter" {
			schema = arrayOf(&jsonschema.Schema{Type: "string"})
		}
		params = append(params, Parameter{Name: name, In: "query", Schema: schema})
	}
	return params
}

// operationID derives a camel case id from method and path, for example
// GET /api/v1/tasks/{id}/comments becomes getTasksByIdComments.
func operationID(op Operation) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(strings.ToLower(op.Method))
	for _, seg := range strings.Split(strings.TrimPrefix(op.Path, apiPrefix), "/") {
		if seg == "" {
			continue
		}
		if name, ok := strings.CutPrefix(seg, "{"); ok {
			b.WriteString("By")
			seg = strings.TrimSuffix(name, "}")
		}
		b.WriteString(title.String(seg))
	}
	return b.String()
}
