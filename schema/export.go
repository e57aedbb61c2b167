package schema

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
	"github.com/strict-types/strict-encoding-sub000/strict"
	"gopkg.in/yaml.v3"
)

// encMode uses Core Deterministic Encoding so that a tree always maps
// to the same bytes, which makes the output usable as a hash preimage.
var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("schema: CBOR encoder initialization failed: " + err.Error())
	}
	return mode
}

func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("schema: CBOR decoder initialization failed: " + err.Error())
	}
	return mode
}

// MarshalCBOR encodes a type tree in its canonical CBOR form.
func MarshalCBOR(tree *strict.TypeNode) ([]byte, error) {
	return encMode.Marshal(tree)
}

// UnmarshalCBOR decodes a tree produced by MarshalCBOR.
func UnmarshalCBOR(data []byte) (*strict.TypeNode, error) {
	var tree strict.TypeNode
	if err := decMode.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// Document is the exported form of a set of registered types.
type Document struct {
	Types []*Type `cbor:"types" yaml:"types"`
}

func (d Document) EncodeCBOR() ([]byte, error) {
	return encMode.Marshal(d)
}

// EncodeYAML renders the document with two space indentation.
func (d Document) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeYAML reads a document written by EncodeYAML.
func DecodeYAML(data []byte) (Document, error) {
	var d Document
	err := yaml.Unmarshal(data, &d)
	return d, err
}
