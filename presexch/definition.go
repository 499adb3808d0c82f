/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	"errors"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// Required predicate`s value.
	Required Preference = "required"
	// Preferred predicate`s value.
	Preferred Preference = "preferred"

	// FormatMSOMdoc is the claim format designation of ISO mdoc credentials.
	FormatMSOMdoc = "mso_mdoc"
)

// Preference can be "required" or "preferred".
type Preference string

// Format describes InputDescriptor`s Format field.
type Format struct {
	MSOMdoc *MSOMdocType `json:"mso_mdoc,omitempty"`
}

// MSOMdocType contains alg.
type MSOMdocType struct {
	Alg []string `json:"alg,omitempty"`
}

// PresentationDefinition presentation definitions (https://identity.foundation/presentation-exchange/).
type PresentationDefinition struct {
	// ID unique resource identifier.
	ID string `json:"id,omitempty"`
	// Name human-friendly name that describes what the Presentation Definition pertains to.
	Name string `json:"name,omitempty"`
	// Purpose describes the purpose for which the Presentation Definition’s inputs are being requested.
	Purpose          string             `json:"purpose,omitempty"`
	InputDescriptors []*InputDescriptor `json:"input_descriptors,omitempty"`
}

// InputDescriptor input descriptors.
type InputDescriptor struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name,omitempty"`
	Purpose     string       `json:"purpose,omitempty"`
	Format      *Format      `json:"format,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty"`
}

// Constraints describes InputDescriptor`s Constraints field.
type Constraints struct {
	Fields          []*Field    `json:"fields,omitempty"`
	LimitDisclosure *Preference `json:"limit_disclosure,omitempty"`
}

// Field describes Constraints`s Fields field.
type Field struct {
	Path           []string    `json:"path,omitempty"`
	ID             string      `json:"id,omitempty"`
	Purpose        string      `json:"purpose,omitempty"`
	Optional       bool        `json:"optional,omitempty"`
	IntentToRetain bool        `json:"intent_to_retain"`
	Predicate      *Preference `json:"predicate,omitempty"`
}

// ValidateSchema validates presentation definition.
func (pd *PresentationDefinition) ValidateSchema() error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(definitionSchema),
		gojsonschema.NewGoLoader(struct {
			PD *PresentationDefinition `json:"presentation_definition"`
		}{PD: pd}),
	)
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	resultErrors := result.Errors()

	errs := make([]string, len(resultErrors))
	for i := range resultErrors {
		errs[i] = resultErrors[i].String()
	}

	return errors.New(strings.Join(errs, ","))
}

// InputDescriptor returns the input descriptor with the given id. Surrounding whitespace of ids
// is not significant.
func (pd *PresentationDefinition) InputDescriptor(id string) (*InputDescriptor, bool) {
	for _, descriptor := range pd.InputDescriptors {
		if strings.TrimSpace(descriptor.ID) == strings.TrimSpace(id) {
			return descriptor, true
		}
	}

	return nil, false
}

// LimitsDisclosure reports whether the wallet must not release claims beyond the requested fields.
func (c *Constraints) LimitsDisclosure() bool {
	return c != nil && c.LimitDisclosure != nil && *c.LimitDisclosure == Required
}

// SupportsAlg reports whether alg is an accepted mso_mdoc signature algorithm.
func (d *InputDescriptor) SupportsAlg(alg string) bool {
	if d.Format == nil || d.Format.MSOMdoc == nil {
		return false
	}

	for _, a := range d.Format.MSOMdoc.Alg {
		if a == alg {
			return true
		}
	}

	return false
}
