package v1alpha1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Request bodies larger than this are rejected outright.
const maxBodyBytes = 1 << 20

const labelsProperty = `{
	"type": "object",
	"additionalProperties": {"type": "string"}
}`

const matchExpressionsProperty = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["key", "operator"],
		"properties": {
			"key": {"type": "string"},
			"operator": {
				"type": "string",
				"enum": ["In", "NotIn", "Exists", "DoesNotExist", "Equals", "NotEquals"]
			},
			"values": {
				"type": "array",
				"items": {"type": "string"}
			}
		},
		"additionalProperties": false
	}
}`

// The id, path and timestamp fields are accepted here so a PATCH may
// echo them back unchanged; the service rejects actual modifications.
var selectorWriteSchemaJSON = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"path": {"type": "string"},
		"displayName": {"type": "string"},
		"description": {"type": "string"},
		"expression": {"type": "string"},
		"matchLabels": ` + labelsProperty + `,
		"matchExpressions": ` + matchExpressionsProperty + `,
		"enabled": {"type": "boolean"},
		"createTime": {"type": "string"},
		"updateTime": {"type": "string"}
	},
	"additionalProperties": false
}`

var evaluateSchemaJSON = `{
	"type": "object",
	"required": ["labels"],
	"properties": {
		"labels": ` + labelsProperty + `
	},
	"additionalProperties": false
}`

var adHocEvaluateSchemaJSON = `{
	"type": "object",
	"required": ["labels"],
	"properties": {
		"expression": {"type": "string"},
		"matchLabels": ` + labelsProperty + `,
		"matchExpressions": ` + matchExpressionsProperty + `,
		"labels": ` + labelsProperty + `
	},
	"additionalProperties": false
}`

var (
	selectorWriteSchema = mustCompileSchema("selector-write.json", selectorWriteSchemaJSON)
	evaluateSchema      = mustCompileSchema("evaluate.json", evaluateSchemaJSON)
	adHocEvaluateSchema = mustCompileSchema("adhoc-evaluate.json", adHocEvaluateSchemaJSON)
	labelMatchSchema    = mustCompileSchema("label-match.json", evaluateSchemaJSON)
)

func mustCompileSchema(name, doc string) *jsonschema.Schema {
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, inst); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(err)
	}
	return schema
}

// decodeBody reads, schema-validates and unmarshals a JSON request
// body. On failure a problem response has already been written and
// false is returned.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, target any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, "Failed to read request body", err.Error())
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		h.writeProblem(w, r, http.StatusBadRequest, "Request body is required", "")
		return false
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, "Request body is not valid JSON", err.Error())
		return false
	}
	if err := schema.Validate(instance); err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, "Request body failed validation", err.Error())
		return false
	}

	if err := json.Unmarshal(body, target); err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, "Failed to decode request body", err.Error())
		return false
	}
	return true
}
