package shtranslate

import (
	"encoding/json"
	"fmt"
)

// NoValue is the backend's sentinel for an unassigned location, binding, or
// offset. Sentinel values are elided from serialized output entirely rather
// than emitted as null.
const NoValue = -1

// ShaderVariable is one node of the reflection tree: an attribute, varying,
// uniform, output, or block member. A variable representing a struct carries
// its members in Fields, recursively.
type ShaderVariable struct {
	Name              string
	MappedName        string
	Type              uint32
	Precision         uint32
	StaticUse         bool
	Active            bool
	Location          int
	Binding           int
	Offset            int
	IsRowMajor        bool
	ArraySizes        []uint32
	StructOrBlockName string
	Fields            []ShaderVariable
}

// variableWire is the stable serialized shape of a ShaderVariable.
type variableWire struct {
	Name              string           `json:"name"`
	MappedName        string           `json:"mapped_name"`
	Type              uint32           `json:"type_enum"`
	Precision         uint32           `json:"precision_enum"`
	StaticUse         bool             `json:"static_use"`
	Active            bool             `json:"active"`
	Location          *int             `json:"location,omitempty"`
	Binding           *int             `json:"binding,omitempty"`
	Offset            *int             `json:"offset,omitempty"`
	IsRowMajor        bool             `json:"is_row_major"`
	ArraySizes        []uint32         `json:"array_sizes,omitempty"`
	StructOrBlockName string           `json:"struct_or_block_name,omitempty"`
	Fields            []ShaderVariable `json:"fields,omitempty"`
}

// optional converts a backend integer to a pointer, eliding the sentinel.
func optional(v int) *int {
	if v == NoValue {
		return nil
	}
	return &v
}

// fromOptional converts a decoded optional back to the sentinel convention.
func fromOptional(p *int) int {
	if p == nil {
		return NoValue
	}
	return *p
}

// MarshalJSON serializes the variable in the stable wire shape: optional
// numeric attributes only when non-sentinel, fields only for structs.
func (v ShaderVariable) MarshalJSON() ([]byte, error) {
	return json.Marshal(variableWire{
		Name:              v.Name,
		MappedName:        v.MappedName,
		Type:              v.Type,
		Precision:         v.Precision,
		StaticUse:         v.StaticUse,
		Active:            v.Active,
		Location:          optional(v.Location),
		Binding:           optional(v.Binding),
		Offset:            optional(v.Offset),
		IsRowMajor:        v.IsRowMajor,
		ArraySizes:        v.ArraySizes,
		StructOrBlockName: v.StructOrBlockName,
		Fields:            v.Fields,
	})
}

// UnmarshalJSON decodes the wire shape, restoring sentinel values for absent
// optional attributes.
func (v *ShaderVariable) UnmarshalJSON(data []byte) error {
	var w variableWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*v = ShaderVariable{
		Name:              w.Name,
		MappedName:        w.MappedName,
		Type:              w.Type,
		Precision:         w.Precision,
		StaticUse:         w.StaticUse,
		Active:            w.Active,
		Location:          fromOptional(w.Location),
		Binding:           fromOptional(w.Binding),
		Offset:            fromOptional(w.Offset),
		IsRowMajor:        w.IsRowMajor,
		ArraySizes:        w.ArraySizes,
		StructOrBlockName: w.StructOrBlockName,
		Fields:            w.Fields,
	}
	return nil
}

// BlockLayout is the memory layout of an interface block.
type BlockLayout int

const (
	BlockLayoutShared BlockLayout = iota
	BlockLayoutPacked
	BlockLayoutStd140
	BlockLayoutStd430
)

// String returns the layout's protocol token.
func (l BlockLayout) String() string {
	switch l {
	case BlockLayoutShared:
		return "shared"
	case BlockLayoutPacked:
		return "packed"
	case BlockLayoutStd140:
		return "std140"
	case BlockLayoutStd430:
		return "std430"
	}
	return "unknown"
}

// MarshalJSON serializes the layout as its protocol token.
func (l BlockLayout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a layout token. Unknown tokens decode to shared
// rather than failing, matching the backend's lenient reporting.
func (l *BlockLayout) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("block layout: %w", err)
	}
	switch s {
	case "packed":
		*l = BlockLayoutPacked
	case "std140":
		*l = BlockLayoutStd140
	case "std430":
		*l = BlockLayoutStd430
	default:
		*l = BlockLayoutShared
	}
	return nil
}

// InterfaceBlock is a uniform block, shader storage buffer block, or generic
// interface block, with its member variables.
type InterfaceBlock struct {
	Name         string
	MappedName   string
	InstanceName string
	ArraySize    uint32
	Layout       BlockLayout
	Binding      int
	StaticUse    bool
	Active       bool
	IsRowMajor   bool
	Fields       []ShaderVariable
}

type blockWire struct {
	Name         string           `json:"name"`
	MappedName   string           `json:"mapped_name"`
	InstanceName string           `json:"instance_name,omitempty"`
	ArraySize    *uint32          `json:"array_size,omitempty"`
	Layout       BlockLayout      `json:"layout"`
	Binding      *int             `json:"binding,omitempty"`
	StaticUse    bool             `json:"static_use"`
	Active       bool             `json:"active"`
	IsRowMajor   bool             `json:"is_row_major_layout"`
	Fields       []ShaderVariable `json:"fields"`
}

// MarshalJSON serializes the block in the stable wire shape. The member
// sequence is always present, even when empty.
func (b InterfaceBlock) MarshalJSON() ([]byte, error) {
	var arraySize *uint32
	if b.ArraySize > 0 {
		arraySize = &b.ArraySize
	}
	fields := b.Fields
	if fields == nil {
		fields = []ShaderVariable{}
	}
	return json.Marshal(blockWire{
		Name:         b.Name,
		MappedName:   b.MappedName,
		InstanceName: b.InstanceName,
		ArraySize:    arraySize,
		Layout:       b.Layout,
		Binding:      optional(b.Binding),
		StaticUse:    b.StaticUse,
		Active:       b.Active,
		IsRowMajor:   b.IsRowMajor,
		Fields:       fields,
	})
}

// UnmarshalJSON decodes the wire shape.
func (b *InterfaceBlock) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var arraySize uint32
	if w.ArraySize != nil {
		arraySize = *w.ArraySize
	}
	*b = InterfaceBlock{
		Name:         w.Name,
		MappedName:   w.MappedName,
		InstanceName: w.InstanceName,
		ArraySize:    arraySize,
		Layout:       w.Layout,
		Binding:      fromOptional(w.Binding),
		StaticUse:    w.StaticUse,
		Active:       w.Active,
		IsRowMajor:   w.IsRowMajor,
		Fields:       w.Fields,
	}
	return nil
}

// ActiveVariables is the normalized reflection tree for one compile. All
// eight category keys are always present and serialize as arrays, never
// null, so consumers can index any category unconditionally.
type ActiveVariables struct {
	Attributes                []ShaderVariable `json:"attributes"`
	InputVaryings             []ShaderVariable `json:"input_varyings"`
	OutputVaryings            []ShaderVariable `json:"output_varyings"`
	OutputVariables           []ShaderVariable `json:"output_variables"`
	Uniforms                  []ShaderVariable `json:"uniforms"`
	UniformBlocks             []InterfaceBlock `json:"uniform_blocks"`
	ShaderStorageBufferBlocks []InterfaceBlock `json:"shader_storage_buffer_blocks"`
	GenericInterfaceBlocks    []InterfaceBlock `json:"generic_interface_blocks"`
}

func orEmptyVars(vars []ShaderVariable) []ShaderVariable {
	if vars == nil {
		return []ShaderVariable{}
	}
	return vars
}

func orEmptyBlocks(blocks []InterfaceBlock) []InterfaceBlock {
	if blocks == nil {
		return []InterfaceBlock{}
	}
	return blocks
}

// CollectActiveVariables reads every reflection category from the compiler
// and normalizes absent categories to empty sequences.
func CollectActiveVariables(c Compiler) *ActiveVariables {
	return &ActiveVariables{
		Attributes:                orEmptyVars(c.Attributes()),
		InputVaryings:             orEmptyVars(c.InputVaryings()),
		OutputVaryings:            orEmptyVars(c.OutputVaryings()),
		OutputVariables:           orEmptyVars(c.OutputVariables()),
		Uniforms:                  orEmptyVars(c.Uniforms()),
		UniformBlocks:             orEmptyBlocks(c.UniformBlocks()),
		ShaderStorageBufferBlocks: orEmptyBlocks(c.ShaderStorageBlocks()),
		GenericInterfaceBlocks:    orEmptyBlocks(c.InterfaceBlocks()),
	}
}
