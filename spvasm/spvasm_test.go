package spvasm

import (
	"encoding/binary"
	"strings"
	"testing"
)

func words(ws ...uint32) []byte {
	b := make([]byte, len(ws)*4)
	for i, w := range ws {
		binary.LittleEndian.PutUint32(b[i*4:], w)
	}
	return b
}

func instr(opcode uint16, ops ...uint32) []uint32 {
	first := uint32(len(ops)+1)<<16 | uint32(opcode)
	return append([]uint32{first}, ops...)
}

// minimalModule is a tiny valid module: header, OpCapability Shader,
// OpMemoryModel Logical GLSL450, OpTypeVoid %_1.
func minimalModule() []byte {
	var ws []uint32
	ws = append(ws, Magic, 0x00010300, 0, 2, 0) // version 1.3, bound 2, schema 0
	ws = append(ws, instr(17, 1)...)            // OpCapability Shader
	ws = append(ws, instr(14, 0, 1)...)         // OpMemoryModel Logical GLSL450
	ws = append(ws, instr(19, 1)...)            // %_1 = OpTypeVoid
	return words(ws...)
}

func TestDisassembleMinimal(t *testing.T) {
	out, err := Disassemble(minimalModule())
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	for _, want := range []string{
		"; SPIR-V",
		"; Version: 1.3",
		"; Bound: 2",
		"OpCapability Shader",
		"OpMemoryModel Logical GLSL450",
		"%_1 = OpTypeVoid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisassembleEntryPoint(t *testing.T) {
	var ws []uint32
	ws = append(ws, Magic, 0x00010000, 0, 5, 0)
	// OpEntryPoint Fragment %_4 "main" %_2 %_3
	name := uint32('m') | uint32('a')<<8 | uint32('i')<<16 | uint32('n')<<24
	ws = append(ws, instr(15, 4, 4, name, 0, 2, 3)...)
	out, err := Disassemble(words(ws...))
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	want := `OpEntryPoint Fragment %_4 "main" %_2 %_3`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestDisassembleBadMagic(t *testing.T) {
	data := words(0xDEADBEEF, 0x00010000, 0, 1, 0)
	if _, err := Disassemble(data); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestDisassembleTruncated(t *testing.T) {
	if _, err := Disassemble(words(Magic, 0x00010000)); err == nil {
		t.Fatal("expected error for truncated header")
	}
	// Instruction claims 4 words but only 1 remains.
	data := words(Magic, 0x00010000, 0, 1, 0, 4<<16|17)
	if _, err := Disassemble(data); err == nil {
		t.Fatal("expected error for truncated instruction")
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	var ws []uint32
	ws = append(ws, Magic, 0x00010000, 0, 1, 0)
	ws = append(ws, instr(9999)...)
	out, err := Disassemble(words(ws...))
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(out, "Op9999") {
		t.Errorf("unknown opcode not rendered generically:\n%s", out)
	}
}
