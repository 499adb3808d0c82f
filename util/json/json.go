/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrSerialization is returned when a value cannot be encoded to JSON.
var ErrSerialization = errors.New("serialization error")

const indent = "  "

// Marshal encodes v to JSON. Map keys are emitted in sorted order.
func Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %T: %v", ErrSerialization, v, err)
	}

	return b, nil
}

// MarshalIndent encodes v to JSON indented with two spaces. HTML characters are not escaped
// and no trailing newline is added.
func MarshalIndent(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: marshal %T: %v", ErrSerialization, v, err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// SplitJSONObj splits provides fields into separate object.
func SplitJSONObj(json map[string]interface{}, flds ...string) (map[string]interface{}, map[string]interface{}) {
	fldsMap := make(map[string]interface{})
	rest := make(map[string]interface{})

	for k, v := range json {
		if slices.Contains(flds, k) {
			fldsMap[k] = v
		} else {
			rest[k] = v
		}
	}

	return fldsMap, rest
}

// ShallowCopyObj creates new json object with copied fields form provided object.
func ShallowCopyObj(json map[string]interface{}) map[string]interface{} {
	flds := make(map[string]interface{}, len(json))

	for k, v := range json {
		flds[k] = v
	}

	return flds
}

// CopyExcept copies all fields except fields with given names.
func CopyExcept(json map[string]interface{}, flds ...string) map[string]interface{} {
	newJSON := ShallowCopyObj(json)

	for _, fld := range flds {
		delete(newJSON, fld)
	}

	return newJSON
}

// ToMap convert object, string or bytes to json object represented by map.
func ToMap(v interface{}) (map[string]interface{}, error) {
	var (
		b   []byte
		err error
	)

	switch cv := v.(type) {
	case []byte:
		b = cv
	case string:
		b = []byte(cv)
	default:
		b, err = Marshal(v)
		if err != nil {
			return nil, err
		}
	}

	var m map[string]interface{}

	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, err
	}

	return m, nil
}
