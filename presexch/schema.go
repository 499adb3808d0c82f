/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

const definitionSchema = `
{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "definitions": {
        "preference": {
            "type": "string",
            "enum": ["required", "preferred"]
        },
        "format": {
            "type": "object",
            "properties": {
                "mso_mdoc": {
                    "type": "object",
                    "properties": {
                        "alg": {
                            "type": "array",
                            "minItems": 1,
                            "items": { "type": "string" }
                        }
                    },
                    "required": ["alg"],
                    "additionalProperties": false
                }
            },
            "minProperties": 1,
            "additionalProperties": false
        },
        "field": {
            "type": "object",
            "properties": {
                "path": {
                    "type": "array",
                    "minItems": 1,
                    "items": { "type": "string", "pattern": "^\\$" }
                },
                "id": { "type": "string" },
                "purpose": { "type": "string" },
                "optional": { "type": "boolean" },
                "intent_to_retain": { "type": "boolean" },
                "predicate": { "$ref": "#/definitions/preference" }
            },
            "required": ["path"],
            "additionalProperties": false
        },
        "input_descriptor": {
            "type": "object",
            "properties": {
                "id": { "type": "string", "minLength": 1 },
                "name": { "type": "string" },
                "purpose": { "type": "string" },
                "format": { "$ref": "#/definitions/format" },
                "constraints": {
                    "type": "object",
                    "properties": {
                        "limit_disclosure": { "$ref": "#/definitions/preference" },
                        "fields": {
                            "type": "array",
                            "items": { "$ref": "#/definitions/field" }
                        }
                    },
                    "additionalProperties": false
                }
            },
            "required": ["id", "constraints"],
            "additionalProperties": false
        }
    },
    "type": "object",
    "properties": {
        "presentation_definition": {
            "type": "object",
            "properties": {
                "id": { "type": "string", "minLength": 1 },
                "name": { "type": "string" },
                "purpose": { "type": "string" },
                "input_descriptors": {
                    "type": "array",
                    "minItems": 1,
                    "items": { "$ref": "#/definitions/input_descriptor" }
                }
            },
            "required": ["id", "input_descriptors"],
            "additionalProperties": false
        }
    },
    "required": ["presentation_definition"],
    "additionalProperties": false
}
`
