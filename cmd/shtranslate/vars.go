package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/shtranslate"
)

// glTypeNames maps the common GL type enums reported by the translator to
// their symbolic names. Anything else prints as UNKNOWN.
var glTypeNames = map[uint32]string{
	0x1400: "GL_BYTE",
	0x1401: "GL_UNSIGNED_BYTE",
	0x1404: "GL_INT",
	0x1405: "GL_UNSIGNED_INT",
	0x1406: "GL_FLOAT",
	0x8B50: "GL_FLOAT_VEC2",
	0x8B51: "GL_FLOAT_VEC3",
	0x8B52: "GL_FLOAT_VEC4",
	0x8B53: "GL_INT_VEC2",
	0x8B54: "GL_INT_VEC3",
	0x8B55: "GL_INT_VEC4",
	0x8B56: "GL_BOOL",
	0x8B57: "GL_BOOL_VEC2",
	0x8B58: "GL_BOOL_VEC3",
	0x8B59: "GL_BOOL_VEC4",
	0x8B5A: "GL_FLOAT_MAT2",
	0x8B5B: "GL_FLOAT_MAT3",
	0x8B5C: "GL_FLOAT_MAT4",
	0x8B65: "GL_FLOAT_MAT2x3",
	0x8B66: "GL_FLOAT_MAT2x4",
	0x8B67: "GL_FLOAT_MAT3x2",
	0x8B68: "GL_FLOAT_MAT3x4",
	0x8B69: "GL_FLOAT_MAT4x2",
	0x8B6A: "GL_FLOAT_MAT4x3",
	0x8DC6: "GL_UNSIGNED_INT_VEC2",
	0x8DC7: "GL_UNSIGNED_INT_VEC3",
	0x8DC8: "GL_UNSIGNED_INT_VEC4",
	0x8B5E: "GL_SAMPLER_2D",
	0x8B5F: "GL_SAMPLER_3D",
	0x8B60: "GL_SAMPLER_CUBE",
	0x8B62: "GL_SAMPLER_2D_SHADOW",
	0x8DC1: "GL_SAMPLER_2D_ARRAY",
	0x8DC4: "GL_SAMPLER_2D_ARRAY_SHADOW",
	0x8DC5: "GL_SAMPLER_CUBE_SHADOW",
	0x9108: "GL_SAMPLER_2D_MULTISAMPLE",
	0x8DCA: "GL_INT_SAMPLER_2D",
	0x8DCB: "GL_INT_SAMPLER_3D",
	0x8DCC: "GL_INT_SAMPLER_CUBE",
	0x8DCF: "GL_INT_SAMPLER_2D_ARRAY",
	0x8DD2: "GL_UNSIGNED_INT_SAMPLER_2D",
	0x8DD3: "GL_UNSIGNED_INT_SAMPLER_3D",
	0x8DD4: "GL_UNSIGNED_INT_SAMPLER_CUBE",
	0x8DD7: "GL_UNSIGNED_INT_SAMPLER_2D_ARRAY",
	0x8D66: "GL_SAMPLER_EXTERNAL_OES",
	0x904D: "GL_IMAGE_2D",
	0x904E: "GL_IMAGE_3D",
	0x9050: "GL_IMAGE_CUBE",
	0x9053: "GL_IMAGE_2D_ARRAY",
	0x92DB: "GL_UNSIGNED_INT_ATOMIC_COUNTER",
}

func glTypeName(t uint32) string {
	if name, ok := glTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// printActiveVariables renders the reflection tree the way the batch mode
// traditionally prints it: one category per paragraph, struct members
// indented recursively.
func printActiveVariables(w io.Writer, vars *shtranslate.ActiveVariables) {
	categories := []struct {
		name string
		vars []shtranslate.ShaderVariable
	}{
		{"uniform", vars.Uniforms},
		{"input varying", vars.InputVaryings},
		{"output varying", vars.OutputVaryings},
		{"attribute", vars.Attributes},
		{"output", vars.OutputVariables},
	}
	for _, cat := range categories {
		for i, v := range cat.vars {
			printVariable(w, cat.name, i, &v)
		}
		fmt.Fprintln(w)
	}
}

func printVariable(w io.Writer, prefix string, index int, v *shtranslate.ShaderVariable) {
	fmt.Fprintf(w, "%s %d : name=%s, mappedName=%s, type=%s, arraySizes=",
		prefix, index, v.Name, v.MappedName, glTypeName(v.Type))
	for _, size := range v.ArraySizes {
		fmt.Fprintf(w, "%d ", size)
	}
	fmt.Fprintln(w)
	if len(v.Fields) > 0 {
		pad := strings.Repeat(" ", len(prefix))
		fmt.Fprintf(w, "%s  struct %s\n", pad, v.StructOrBlockName)
		fieldPrefix := pad + "    field"
		for i, f := range v.Fields {
			printVariable(w, fieldPrefix, i, &f)
		}
	}
}
