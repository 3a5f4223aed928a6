package server

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mes-labs/receipt-extractor/constants"
)

// updateRequestSchema guards /v1/receipts/update: a previously returned
// result plus at least one label→value correction. Update keys are limited
// to the field-label vocabulary and values are always strings.
func updateRequestSchema() string {
	labels, _ := json.Marshal(constants.UpdateLabels)
	return fmt.Sprintf(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["result", "updates"],
	"properties": {
		"result": {
			"type": "object"
		},
		"updates": {
			"type": "object",
			"minProperties": 1,
			"propertyNames": {"enum": %s},
			"additionalProperties": {"type": "string"}
		}
	},
	"additionalProperties": false
}`, labels)
}

var compiledUpdateSchema = jsonschema.MustCompileString("update_request.json", updateRequestSchema())
