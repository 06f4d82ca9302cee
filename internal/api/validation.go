package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const maxBodyBytes = 1 << 20

const startSessionSchema = `{
	"type": "object",
	"required": ["domain"],
	"properties": {
		"domain": {"type": "string", "minLength": 1},
		"count": {"type": "integer", "minimum": 1}
	},
	"additionalProperties": false
}`

const submitSessionSchema = `{
	"type": "object",
	"required": ["domain", "answers"],
	"properties": {
		"domain": {"type": "string", "minLength": 1},
		"answers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question_id", "user_answer"],
				"properties": {
					"question_id": {"type": "string"},
					"user_answer": {"type": "string"}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

var (
	startSessionRequestSchema  = mustCompileSchema("start-session", startSessionSchema)
	submitSessionRequestSchema = mustCompileSchema("submit-session", submitSessionSchema)
)

// validator is implemented by request types with rules JSON Schema cannot
// express.
type validator interface {
	Validate() error
}

func mustCompileSchema(name, definition string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("api: parse %s schema: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("api: add %s schema: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("api: compile %s schema: %v", name, err))
	}
	return compiled
}

// decodeAndValidate reads the request body, checks it against schema, decodes
// it into v and runs v's own validation. On failure it writes a 400 response
// and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := schema.Validate(inst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}

	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return false
		}
	}
	return true
}
