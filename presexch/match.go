/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/theory/jsonpath"
)

// ErrNoMatch is returned when claims do not satisfy an input descriptor.
var ErrNoMatch = errors.New("claims do not match input descriptor")

// Match evaluates the field paths of an input descriptor against mdoc claims, given as
// name space -> element identifier -> value. It returns the matched paths. Missing required
// paths, and claims outside the requested fields when disclosure is limited, fail with ErrNoMatch.
func (pd *PresentationDefinition) Match(descriptorID string, claims map[string]interface{}) ([]string, error) {
	descriptor, ok := pd.InputDescriptor(descriptorID)
	if !ok {
		return nil, fmt.Errorf("input descriptor %q not found in presentation definition %s", descriptorID, pd.ID)
	}

	if descriptor.Constraints == nil {
		return nil, nil
	}

	var (
		matched []string
		missing []string
	)

	for _, field := range descriptor.Constraints.Fields {
		path, found, err := matchField(field, claims)
		if err != nil {
			return nil, err
		}

		if found {
			matched = append(matched, path)

			continue
		}

		if !field.Optional {
			missing = append(missing, strings.Join(field.Path, " | "))
		}
	}

	if len(missing) > 0 {
		return matched, fmt.Errorf("%w: missing %s", ErrNoMatch, strings.Join(missing, ", "))
	}

	if descriptor.Constraints.LimitsDisclosure() {
		if extra := undisclosable(descriptor.Constraints, claims); len(extra) > 0 {
			return matched, fmt.Errorf("%w: claims not requested %s", ErrNoMatch, strings.Join(extra, ", "))
		}
	}

	return matched, nil
}

func matchField(field *Field, claims map[string]interface{}) (string, bool, error) {
	for _, path := range field.Path {
		p, err := jsonpath.Parse(path)
		if err != nil {
			return "", false, fmt.Errorf("failed to parse json path %s: %w", path, err)
		}

		if len(p.Select(claims)) > 0 {
			return path, true, nil
		}
	}

	return "", false, nil
}

func undisclosable(constraints *Constraints, claims map[string]interface{}) []string {
	requested := lo.FlatMap(constraints.Fields, func(f *Field, _ int) []string {
		return f.Path
	})

	var extra []string

	for ns, elements := range claims {
		nsClaims, ok := elements.(map[string]interface{})
		if !ok {
			continue
		}

		for element := range nsClaims {
			if p := ElementPath(ns, element); !lo.Contains(requested, p) {
				extra = append(extra, p)
			}
		}
	}

	sort.Strings(extra)

	return extra
}

// ElementPath returns the JSONPath of an mdoc data element.
func ElementPath(nameSpace, elementIdentifier string) string {
	return fmt.Sprintf("$['%s']['%s']", nameSpace, elementIdentifier)
}
