/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presexch

import (
	"fmt"
	"strings"
)

// PresentationSubmission is the container for the descriptor_map.
type PresentationSubmission struct {
	// DefinitionID links the submission to its definition and must be the id value of a valid Presentation Definition.
	DefinitionID string `json:"definition_id,omitempty"`
	// ID unique resource identifier.
	ID            string                    `json:"id,omitempty"`
	DescriptorMap []*InputDescriptorMapping `json:"descriptor_map"`
}

// InputDescriptorMapping maps an InputDescriptor to a credential pointed to by the JSONPath in `Path`.
type InputDescriptorMapping struct {
	ID     string `json:"id,omitempty"`
	Format string `json:"format,omitempty"`
	Path   string `json:"path,omitempty"`
}

// NewSubmission creates a submission answering every input descriptor of pd with the mdoc
// device response at the root of the vp_token.
func NewSubmission(pd *PresentationDefinition, id string) *PresentationSubmission {
	ps := &PresentationSubmission{
		DefinitionID:  pd.ID,
		ID:            id,
		DescriptorMap: make([]*InputDescriptorMapping, 0, len(pd.InputDescriptors)),
	}

	for _, descriptor := range pd.InputDescriptors {
		ps.DescriptorMap = append(ps.DescriptorMap, &InputDescriptorMapping{
			ID:     strings.TrimSpace(descriptor.ID),
			Format: FormatMSOMdoc,
			Path:   "$",
		})
	}

	return ps
}

// CheckDefinition checks that the submission answers every input descriptor of pd.
func (ps *PresentationSubmission) CheckDefinition(pd *PresentationDefinition) error {
	if ps.DefinitionID != pd.ID {
		return fmt.Errorf("submission definition id %s does not match presentation definition %s",
			ps.DefinitionID, pd.ID)
	}

	for _, descriptor := range pd.InputDescriptors {
		if _, ok := ps.Mapping(descriptor.ID); !ok {
			return fmt.Errorf("input descriptor %q is not answered by the submission", descriptor.ID)
		}
	}

	for _, mapping := range ps.DescriptorMap {
		if _, ok := pd.InputDescriptor(mapping.ID); !ok {
			return fmt.Errorf("descriptor map entry %q has no input descriptor", mapping.ID)
		}

		if mapping.Format != FormatMSOMdoc {
			return fmt.Errorf("descriptor map entry %q has unsupported format %s", mapping.ID, mapping.Format)
		}
	}

	return nil
}

// Mapping returns the descriptor map entry of an input descriptor.
func (ps *PresentationSubmission) Mapping(descriptorID string) (*InputDescriptorMapping, bool) {
	for _, mapping := range ps.DescriptorMap {
		if strings.TrimSpace(mapping.ID) == strings.TrimSpace(descriptorID) {
			return mapping, true
		}
	}

	return nil, false
}
