/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mdoc

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

const tagEncodedCBOR = 24

// Pre-configured modes for CBOR encoding and decoding.
var (
	encMode        cbor.EncMode
	decMode        cbor.DecMode
	elementDecMode cbor.DecMode
)

func init() {
	var err error

	// init encode mode
	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCoreDeterministic, // sort map keys
		IndefLength: cbor.IndefLengthForbidden,  // no streaming
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(err)
	}

	// init decode mode
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF, // duplicated key not allowed
		IndefLength: cbor.IndefLengthForbidden, // no streaming
		IntDec:      cbor.IntDecConvertSigned,  // decode CBOR uint/int to Go int64
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(err)
	}

	// element values end up in JSON documents, so nested maps get string keys
	decOpts.DefaultMapType = reflect.TypeOf(map[string]interface{}(nil))
	elementDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(err)
	}
}

// wrapEncodedCBOR returns the tag 24 wrapping of data: #6.24(bstr .cbor data).
func wrapEncodedCBOR(data []byte) ([]byte, error) {
	return encMode.Marshal(cbor.Tag{Number: tagEncodedCBOR, Content: data})
}

// unwrapEncodedCBOR returns the content of a tag 24 item.
func unwrapEncodedCBOR(data []byte) ([]byte, error) {
	var tag cbor.Tag

	if err := decMode.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	content, ok := tag.Content.([]byte)
	if tag.Number != tagEncodedCBOR || !ok {
		return nil, fmt.Errorf("expected tag 24 with byte string content, got tag %d", tag.Number)
	}

	return content, nil
}

// plainValue replaces tagged values with their content so that element values can be
// compared with JSON claims. full-date (1004) is the typical case.
func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case cbor.Tag:
		return plainValue(val.Content)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}

		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}

		return out
	default:
		return v
	}
}
