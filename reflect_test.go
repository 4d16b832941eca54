package shtranslate

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestShaderVariableMarshalElidesSentinels(t *testing.T) {
	v := ShaderVariable{
		Name:       "u_color",
		MappedName: "_uu_color",
		Type:       0x8B52,
		Location:   NoValue,
		Binding:    NoValue,
		Offset:     NoValue,
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{"location", "binding", "offset"} {
		if strings.Contains(s, key) {
			t.Errorf("sentinel %s serialized: %s", key, s)
		}
	}
	for _, key := range []string{`"name"`, `"mapped_name"`, `"type_enum"`, `"static_use"`, `"active"`, `"is_row_major"`} {
		if !strings.Contains(s, key) {
			t.Errorf("missing %s: %s", key, s)
		}
	}
}

func TestShaderVariableMarshalKeepsAssignedValues(t *testing.T) {
	v := ShaderVariable{Name: "a", Location: 3, Binding: 0, Offset: 16}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"location":3`, `"binding":0`, `"offset":16`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s: %s", want, s)
		}
	}
}

func TestShaderVariableRoundTrip(t *testing.T) {
	v := ShaderVariable{
		Name:              "s",
		MappedName:        "_us",
		Type:              1,
		StaticUse:         true,
		Active:            true,
		Location:          NoValue,
		Binding:           2,
		Offset:            NoValue,
		ArraySizes:        []uint32{4},
		StructOrBlockName: "Light",
		Fields: []ShaderVariable{
			{Name: "pos", Location: NoValue, Binding: NoValue, Offset: 0},
		},
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ShaderVariable
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Location != NoValue || back.Offset != NoValue {
		t.Errorf("sentinels not restored: %+v", back)
	}
	if back.Binding != 2 {
		t.Errorf("Binding = %d", back.Binding)
	}
	if len(back.Fields) != 1 || back.Fields[0].Name != "pos" || back.Fields[0].Offset != 0 {
		t.Errorf("fields lost: %+v", back.Fields)
	}
}

func TestBlockLayoutTokens(t *testing.T) {
	tokens := map[BlockLayout]string{
		BlockLayoutShared: "shared",
		BlockLayoutPacked: "packed",
		BlockLayoutStd140: "std140",
		BlockLayoutStd430: "std430",
	}
	for layout, token := range tokens {
		data, err := json.Marshal(layout)
		if err != nil {
			t.Fatalf("marshal %v: %v", layout, err)
		}
		if string(data) != `"`+token+`"` {
			t.Errorf("marshal %v = %s, want %q", layout, data, token)
		}
		var back BlockLayout
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != layout {
			t.Errorf("round trip %v -> %v", layout, back)
		}
	}

	var lenient BlockLayout
	if err := json.Unmarshal([]byte(`"row_major"`), &lenient); err != nil {
		t.Fatalf("unmarshal unknown token: %v", err)
	}
	if lenient != BlockLayoutShared {
		t.Errorf("unknown token decoded to %v, want shared", lenient)
	}
}

func TestInterfaceBlockMarshal(t *testing.T) {
	b := InterfaceBlock{
		Name:       "Uniforms",
		MappedName: "_uUniforms",
		Layout:     BlockLayoutStd140,
		Binding:    NoValue,
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"fields":[]`) {
		t.Errorf("fields must serialize as an empty array: %s", s)
	}
	if strings.Contains(s, "instance_name") || strings.Contains(s, "array_size") || strings.Contains(s, "binding") {
		t.Errorf("absent optionals serialized: %s", s)
	}
	if !strings.Contains(s, `"layout":"std140"`) {
		t.Errorf("layout token missing: %s", s)
	}

	b.InstanceName = "ub"
	b.ArraySize = 2
	b.Binding = 1
	data, err = json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s = string(data)
	for _, want := range []string{`"instance_name":"ub"`, `"array_size":2`, `"binding":1`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s: %s", want, s)
		}
	}
}

func TestActiveVariablesAlwaysArrays(t *testing.T) {
	var vars ActiveVariables
	// Normalize the way CollectActiveVariables would.
	vars.Attributes = orEmptyVars(nil)
	vars.InputVaryings = orEmptyVars(nil)
	vars.OutputVaryings = orEmptyVars(nil)
	vars.OutputVariables = orEmptyVars(nil)
	vars.Uniforms = orEmptyVars(nil)
	vars.UniformBlocks = orEmptyBlocks(nil)
	vars.ShaderStorageBufferBlocks = orEmptyBlocks(nil)
	vars.GenericInterfaceBlocks = orEmptyBlocks(nil)

	data, err := json.Marshal(vars)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := []string{
		"attributes", "input_varyings", "output_varyings", "output_variables",
		"uniforms", "uniform_blocks", "shader_storage_buffer_blocks",
		"generic_interface_blocks",
	}
	if len(decoded) != len(keys) {
		t.Errorf("got %d keys, want %d: %s", len(decoded), len(keys), data)
	}
	for _, key := range keys {
		raw, ok := decoded[key]
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}
		if string(raw) != "[]" {
			t.Errorf("%q = %s, want []", key, raw)
		}
	}
}
