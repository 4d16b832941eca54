// Package spvasm disassembles SPIR-V binaries into the .spvasm text format.
// The batch front end uses it to print binary translation output in a form a
// human can diff and read.
package spvasm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Magic is the SPIR-V magic number in the module's own endianness.
const Magic = 0x07230203

var errTruncated = errors.New("spvasm: module truncated")

// Disassemble renders a SPIR-V module as .spvasm text. It is tolerant of
// unknown opcodes (rendered generically) but rejects a bad magic number,
// a truncated header, or an instruction that runs past the end of the
// module.
func Disassemble(data []byte) (string, error) {
	if len(data) < 20 {
		return "", errTruncated
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return "", fmt.Errorf("spvasm: invalid magic 0x%08X", magic)
	}

	version := binary.LittleEndian.Uint32(data[4:8])

	var sb strings.Builder
	fmt.Fprintf(&sb, "; SPIR-V\n")
	fmt.Fprintf(&sb, "; Version: %d.%d\n", (version>>16)&0xFF, (version>>8)&0xFF)
	fmt.Fprintf(&sb, "; Generator: 0x%08X\n", binary.LittleEndian.Uint32(data[8:12]))
	fmt.Fprintf(&sb, "; Bound: %d\n", binary.LittleEndian.Uint32(data[12:16]))
	fmt.Fprintf(&sb, "; Schema: %d\n", binary.LittleEndian.Uint32(data[16:20]))
	sb.WriteByte('\n')

	offset := 20
	for offset+4 <= len(data) {
		word := binary.LittleEndian.Uint32(data[offset:])
		opcode := uint16(word & 0xFFFF)
		wordCount := int(word >> 16)

		if wordCount == 0 || offset+wordCount*4 > len(data) {
			return sb.String(), fmt.Errorf("spvasm: invalid word count %d at offset 0x%X", wordCount, offset)
		}

		ops := make([]uint32, wordCount-1)
		for i := range ops {
			ops[i] = binary.LittleEndian.Uint32(data[offset+4+i*4:])
		}

		name := opcodeNames[opcode]
		if name == "" {
			name = fmt.Sprintf("Op%d", opcode)
		}

		writeInstruction(&sb, name, opcode, ops, data, offset)
		offset += wordCount * 4
	}
	return sb.String(), nil
}

func readString(data []byte, offset int, maxWords int) (string, int) {
	var sb strings.Builder
	words := 0
	for i := 0; i < maxWords*4; i++ {
		if offset+i >= len(data) {
			break
		}
		b := data[offset+i]
		if b == 0 {
			words = (i / 4) + 1
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), words
}

func id(n uint32) string {
	return fmt.Sprintf("%%_%d", n)
}

func lookup(m map[uint32]string, v uint32) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

//nolint:gocognit,gocyclo,cyclop,funlen,maintidx // switch cases for SPIR-V opcodes
func writeInstruction(sb *strings.Builder, name string, opcode uint16, ops []uint32, data []byte, offset int) {
	switch opcode {
	case 17: // OpCapability
		fmt.Fprintf(sb, "               %s %s\n", name, lookup(capabilities, ops[0]))

	case 11: // OpExtInstImport
		str, _ := readString(data, offset+8, len(ops)-1)
		fmt.Fprintf(sb, "         %s = %s \"%s\"\n", id(ops[0]), name, str)

	case 14: // OpMemoryModel
		a, m := lookup(addressingModels, ops[0]), lookup(memoryModels, ops[1])
		fmt.Fprintf(sb, "               %s %s %s\n", name, a, m)

	case 15: // OpEntryPoint
		model := lookup(executionModels, ops[0])
		str, strWords := readString(data, offset+12, len(ops)-2)
		fmt.Fprintf(sb, "               %s %s %s \"%s\"", name, model, id(ops[1]), str)
		for i := 2 + strWords; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
		sb.WriteByte('\n')

	case 16: // OpExecutionMode
		mode := lookup(executionModes, ops[1])
		fmt.Fprintf(sb, "               %s %s %s", name, id(ops[0]), mode)
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(sb, " %d", ops[i])
		}
		sb.WriteByte('\n')

	case 5: // OpName
		str, _ := readString(data, offset+8, len(ops)-1)
		fmt.Fprintf(sb, "               %s %s \"%s\"\n", name, id(ops[0]), str)

	case 6: // OpMemberName
		str, _ := readString(data, offset+12, len(ops)-2)
		fmt.Fprintf(sb, "               %s %s %d \"%s\"\n", name, id(ops[0]), ops[1], str)

	case 71: // OpDecorate
		dec := lookup(decorations, ops[1])
		fmt.Fprintf(sb, "               %s %s %s", name, id(ops[0]), dec)
		if ops[1] == 11 && len(ops) > 2 { // BuiltIn
			fmt.Fprintf(sb, " %s", lookup(builtins, ops[2]))
		} else {
			for i := 2; i < len(ops); i++ {
				fmt.Fprintf(sb, " %d", ops[i])
			}
		}
		sb.WriteByte('\n')

	case 72: // OpMemberDecorate
		dec := lookup(decorations, ops[2])
		fmt.Fprintf(sb, "               %s %s %d %s", name, id(ops[0]), ops[1], dec)
		for i := 3; i < len(ops); i++ {
			fmt.Fprintf(sb, " %d", ops[i])
		}
		sb.WriteByte('\n')

	case 19, 20, 26: // OpTypeVoid, OpTypeBool, OpTypeSampler
		fmt.Fprintf(sb, "         %s = %s\n", id(ops[0]), name)

	case 21: // OpTypeInt
		sign := "0"
		if ops[2] == 1 {
			sign = "1"
		}
		fmt.Fprintf(sb, "         %s = %s %d %s\n", id(ops[0]), name, ops[1], sign)

	case 22: // OpTypeFloat
		fmt.Fprintf(sb, "         %s = %s %d\n", id(ops[0]), name, ops[1])

	case 23, 24: // OpTypeVector, OpTypeMatrix
		fmt.Fprintf(sb, "         %s = %s %s %d\n", id(ops[0]), name, id(ops[1]), ops[2])

	case 25: // OpTypeImage
		dim := lookup(dims, ops[2])
		// Result Sampled-Type Dim Depth Arrayed MS Sampled Image-Format
		// [Access-Qualifier]; the qualifier is only present when Sampled != 1.
		fmt.Fprintf(sb, "         %s = %s %s %s %d %d %d %d Unknown", id(ops[0]), name, id(ops[1]), dim, ops[3], ops[4], ops[5], ops[6])
		if ops[6] != 1 && len(ops) > 7 {
			fmt.Fprintf(sb, " %d", ops[7])
		}
		sb.WriteByte('\n')

	case 27: // OpTypeSampledImage
		fmt.Fprintf(sb, "         %s = %s %s\n", id(ops[0]), name, id(ops[1]))

	case 28: // OpTypeArray
		fmt.Fprintf(sb, "         %s = %s %s %s\n", id(ops[0]), name, id(ops[1]), id(ops[2]))

	case 30: // OpTypeStruct
		fmt.Fprintf(sb, "         %s = %s", id(ops[0]), name)
		for i := 1; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
		sb.WriteByte('\n')

	case 32: // OpTypePointer
		sc := lookup(storageClasses, ops[1])
		fmt.Fprintf(sb, "         %s = %s %s %s\n", id(ops[0]), name, sc, id(ops[2]))

	case 33: // OpTypeFunction
		fmt.Fprintf(sb, "         %s = %s %s", id(ops[0]), name, id(ops[1]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
		sb.WriteByte('\n')

	case 43: // OpConstant
		fmt.Fprintf(sb, "         %s = %s %s %d\n", id(ops[1]), name, id(ops[0]), ops[2])

	case 44: // OpConstantComposite
		fmt.Fprintf(sb, "         %s = %s %s", id(ops[1]), name, id(ops[0]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
		sb.WriteByte('\n')

	case 54: // OpFunction
		fmt.Fprintf(sb, "         %s = %s %s None %s\n", id(ops[1]), name, id(ops[0]), id(ops[3]))

	case 55: // OpFunctionParameter
		fmt.Fprintf(sb, "         %s = %s %s\n", id(ops[1]), name, id(ops[0]))

	case 56, 253: // OpFunctionEnd, OpReturn
		fmt.Fprintf(sb, "               %s\n", name)

	case 59: // OpVariable
		sc := lookup(storageClasses, ops[2])
		fmt.Fprintf(sb, "         %s = %s %s %s\n", id(ops[1]), name, id(ops[0]), sc)

	case 61: // OpLoad
		fmt.Fprintf(sb, "         %s = %s %s %s\n", id(ops[1]), name, id(ops[0]), id(ops[2]))

	case 62: // OpStore
		fmt.Fprintf(sb, "               %s %s %s\n", name, id(ops[0]), id(ops[1]))

	case 65: // OpAccessChain
		fmt.Fprintf(sb, "         %s = %s %s %s", id(ops[1]), name, id(ops[0]), id(ops[2]))
		for i := 3; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
		sb.WriteByte('\n')

	case 80: // OpCompositeConstruct
		fmt.Fprintf(sb, "         %s = %s %s", id(ops[1]), name, id(ops[0]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
		sb.WriteByte('\n')

	case 81: // OpCompositeExtract
		fmt.Fprintf(sb, "         %s = %s %s %s", id(ops[1]), name, id(ops[0]), id(ops[2]))
		for i := 3; i < len(ops); i++ {
			fmt.Fprintf(sb, " %d", ops[i])
		}
		sb.WriteByte('\n')

	case 79: // OpVectorShuffle
		fmt.Fprintf(sb, "         %s = %s %s %s %s", id(ops[1]), name, id(ops[0]), id(ops[2]), id(ops[3]))
		for i := 4; i < len(ops); i++ {
			fmt.Fprintf(sb, " %d", ops[i])
		}
		sb.WriteByte('\n')

	case 86, 87: // OpSampledImage, OpImageSampleImplicitLod
		fmt.Fprintf(sb, "         %s = %s %s %s %s\n", id(ops[1]), name, id(ops[0]), id(ops[2]), id(ops[3]))

	case 248: // OpLabel
		fmt.Fprintf(sb, "         %s = %s\n", id(ops[0]), name)

	case 249: // OpBranch
		fmt.Fprintf(sb, "               %s %s\n", name, id(ops[0]))

	case 254: // OpReturnValue
		fmt.Fprintf(sb, "               %s %s\n", name, id(ops[0]))

	default:
		writeGenericInstruction(sb, name, opcode, ops)
	}
}

func writeGenericInstruction(sb *strings.Builder, name string, opcode uint16, ops []uint32) {
	sb.WriteString("         ")
	switch {
	case len(ops) >= 2 && opcode >= 126 && opcode <= 200:
		// Arithmetic/logic ops: type result operands...
		fmt.Fprintf(sb, "%s = %s %s", id(ops[1]), name, id(ops[0]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(sb, " %s", id(ops[i]))
		}
	case len(ops) >= 1:
		sb.WriteString(name)
		for _, op := range ops {
			fmt.Fprintf(sb, " %s", id(op))
		}
	default:
		sb.WriteString(name)
	}
	sb.WriteByte('\n')
}
