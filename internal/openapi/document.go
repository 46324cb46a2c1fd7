package openapi

import (
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const Version = "3.1.0"

type Document struct {
	OpenAPI      string                                   `json:"openapi"`
	Info         Info                                     `json:"info"`
	ExternalDocs *ExternalDocs                            `json:"externalDocs,omitempty"`
	Servers      []Server                                 `json:"servers,omitempty"`
	Security     []SecurityRequirement                    `json:"security,omitempty"`
	Tags         []Tag                                    `json:"tags,omitempty"`
	Paths        *orderedmap.OrderedMap[string, PathItem] `json:"paths"`
	Components   Components                               `json:"components"`
}

type Info struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version"`
	Contact     *Contact `json:"contact,omitempty"`
}

type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ExternalDocs struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

type Server struct {
	URL string `json:"url"`
}

type Tag struct {
	Name string `json:"name"`
}

// SecurityRequirement maps a scheme name to its scopes.
type SecurityRequirement map[string][]string

// PathItem is keyed by lower case HTTP method.
type PathItem map[string]*OperationObject

type OperationObject struct {
	Tags        []string                                 `json:"tags,omitempty"`
	Summary     string                                   `json:"summary,omitempty"`
	OperationID string                                   `json:"operationId"`
	Parameters  []Parameter                              `json:"parameters,omitempty"`
	RequestBody *RequestBody                             `json:"requestBody,omitempty"`
	Responses   *orderedmap.OrderedMap[string, Response] `json:"responses"`
	Security    []SecurityRequirement                    `json:"security,omitempty"`
}

type Parameter struct {
	Name     string             `json:"name"`
	In       string             `json:"in"`
	Required bool               `json:"required,omitempty"`
	Schema   *jsonschema.Schema `json:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type Components struct {
	Schemas         *orderedmap.OrderedMap[string, *jsonschema.Schema] `json:"schemas"`
	SecuritySchemes map[string]SecurityScheme                          `json:"securitySchemes,omitempty"`
}

type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme,omitempty"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}

// Response200 returns the success response schema of method on path, or nil.
func (d *Document) Response200(method, path string) *jsonschema.Schema {
	item, ok := d.Paths.Get(path)
	if !ok {
		return nil
	}
	op, ok := item[strings.ToLower(method)]
	if !ok {
		return nil
	}
	resp, ok := op.Responses.Get("200")
	if !ok {
		return nil
	}
	return resp.Content[jsonContent].Schema
}
