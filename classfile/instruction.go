package classfile

import (
	"encoding/binary"
	"fmt"
)

type Opcode uint8

const (
	OpLdc             Opcode = 0x12
	OpLdcW            Opcode = 0x13
	OpLdc2W           Opcode = 0x14
	OpIload           Opcode = 0x15
	OpAload           Opcode = 0x19
	OpIload0          Opcode = 0x1a
	OpAload3          Opcode = 0x2d
	OpIstore          Opcode = 0x36
	OpAstore          Opcode = 0x3a
	OpIstore0         Opcode = 0x3b
	OpAstore3         Opcode = 0x4e
	OpIinc            Opcode = 0x84
	OpRet             Opcode = 0xa9
	OpTableswitch     Opcode = 0xaa
	OpLookupswitch    Opcode = 0xab
	OpGetstatic       Opcode = 0xb2
	OpPutstatic       Opcode = 0xb3
	OpGetfield        Opcode = 0xb4
	OpPutfield        Opcode = 0xb5
	OpInvokevirtual   Opcode = 0xb6
	OpInvokespecial   Opcode = 0xb7
	OpInvokestatic    Opcode = 0xb8
	OpInvokeinterface Opcode = 0xb9
	OpInvokedynamic   Opcode = 0xba
	OpNew             Opcode = 0xbb
	OpAnewarray       Opcode = 0xbd
	OpCheckcast       Opcode = 0xc0
	OpInstanceof      Opcode = 0xc1
	OpWide            Opcode = 0xc4
	OpMultianewarray  Opcode = 0xc5
	OpJsrW            Opcode = 0xc9
)

var opcodeNames = [...]string{
	"nop", "aconst_null", "iconst_m1", "iconst_0", "iconst_1", "iconst_2", "iconst_3", "iconst_4", "iconst_5",
	"lconst_0", "lconst_1", "fconst_0", "fconst_1", "fconst_2", "dconst_0", "dconst_1",
	"bipush", "sipush", "ldc", "ldc_w", "ldc2_w",
	"iload", "lload", "fload", "dload", "aload",
	"iload_0", "iload_1", "iload_2", "iload_3", "lload_0", "lload_1", "lload_2", "lload_3",
	"fload_0", "fload_1", "fload_2", "fload_3", "dload_0", "dload_1", "dload_2", "dload_3",
	"aload_0", "aload_1", "aload_2", "aload_3",
	"iaload", "laload", "faload", "daload", "aaload", "baload", "caload", "saload",
	"istore", "lstore", "fstore", "dstore", "astore",
	"istore_0", "istore_1", "istore_2", "istore_3", "lstore_0", "lstore_1", "lstore_2", "lstore_3",
	"fstore_0", "fstore_1", "fstore_2", "fstore_3", "dstore_0", "dstore_1", "dstore_2", "dstore_3",
	"astore_0", "astore_1", "astore_2", "astore_3",
	"iastore", "lastore", "fastore", "dastore", "aastore", "bastore", "castore", "sastore",
	"pop", "pop2", "dup", "dup_x1", "dup_x2", "dup2", "dup2_x1", "dup2_x2", "swap",
	"iadd", "ladd", "fadd", "dadd", "isub", "lsub", "fsub", "dsub",
	"imul", "lmul", "fmul", "dmul", "idiv", "ldiv", "fdiv", "ddiv",
	"irem", "lrem", "frem", "drem", "ineg", "lneg", "fneg", "dneg",
	"ishl", "lshl", "ishr", "lshr", "iushr", "lushr", "iand", "land", "ior", "lor", "ixor", "lxor",
	"iinc", "i2l", "i2f", "i2d", "l2i", "l2f", "l2d", "f2i", "f2l", "f2d", "d2i", "d2l", "d2f",
	"i2b", "i2c", "i2s", "lcmp", "fcmpl", "fcmpg", "dcmpl", "dcmpg",
	"ifeq", "ifne", "iflt", "ifge", "ifgt", "ifle",
	"if_icmpeq", "if_icmpne", "if_icmplt", "if_icmpge", "if_icmpgt", "if_icmple", "if_acmpeq", "if_acmpne",
	"goto", "jsr", "ret", "tableswitch", "lookupswitch",
	"ireturn", "lreturn", "freturn", "dreturn", "areturn", "return",
	"getstatic", "putstatic", "getfield", "putfield",
	"invokevirtual", "invokespecial", "invokestatic", "invokeinterface", "invokedynamic",
	"new", "newarray", "anewarray", "arraylength", "athrow", "checkcast", "instanceof",
	"monitorenter", "monitorexit", "wide", "multianewarray", "ifnull", "ifnonnull", "goto_w", "jsr_w",
}

func (op Opcode) String() string {
	if op <= OpJsrW {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(0x%02x)", uint8(op))
}

// operandLength returns the fixed operand length for op, or -1 for the
// variable-length switch and wide forms.
func operandLength(op Opcode) int {
	switch {
	case op == 0x10, op == OpLdc, op >= OpIload && op <= OpAload, op >= OpIstore && op <= OpAstore, op == OpRet, op == 0xbc:
		return 1
	case op == 0x11, op == OpLdcW, op == OpLdc2W, op == OpIinc, op >= 0x99 && op <= 0xa8,
		op >= OpGetstatic && op <= OpInvokestatic, op == OpNew, op == OpAnewarray,
		op == OpCheckcast, op == OpInstanceof, op == 0xc6, op == 0xc7:
		return 2
	case op == OpMultianewarray:
		return 3
	case op == OpInvokeinterface, op == OpInvokedynamic, op == 0xc8, op == OpJsrW:
		return 4
	case op == OpTableswitch, op == OpLookupswitch, op == OpWide:
		return -1
	}
	return 0
}

// Instruction is one decoded bytecode instruction. Index and Entry are set
// for instructions that reference the constant pool.
type Instruction struct {
	Offset   int
	Opcode   Opcode
	Wide     bool
	Operands []byte
	Index    uint16
	Entry    ConstantPoolEntry
}

func (i *Instruction) Mnemonic() string {
	return i.Opcode.String()
}

// Length is the number of code bytes the instruction occupies, including
// any wide prefix and switch padding.
func (i *Instruction) Length() int {
	n := 1 + len(i.Operands)
	if i.Wide {
		n++
	}
	return n
}

// LocalVariableIndex reports the local variable slot accessed by load,
// store, iinc and ret instructions.
func (i *Instruction) LocalVariableIndex() (int, bool) {
	switch op := i.Opcode; {
	case op >= OpIload0 && op <= OpAload3:
		return int(op-OpIload0) % 4, true
	case op >= OpIstore0 && op <= OpAstore3:
		return int(op-OpIstore0) % 4, true
	case op >= OpIload && op <= OpAload, op >= OpIstore && op <= OpAstore, op == OpIinc, op == OpRet:
		if i.Wide {
			return int(binary.BigEndian.Uint16(i.Operands)), true
		}
		return int(i.Operands[0]), true
	}
	return 0, false
}

func (i *Instruction) String() string {
	if i.Entry != nil {
		return fmt.Sprintf("%d: %s #%d", i.Offset, i.Mnemonic(), i.Index)
	}
	return fmt.Sprintf("%d: %s", i.Offset, i.Mnemonic())
}

func decodeInstructions(code []byte, cp ConstantPool) ([]*Instruction, error) {
	var instructions []*Instruction
	for offset := 0; offset < len(code); {
		insn, err := decodeInstruction(code, offset, cp)
		if err != nil {
			return nil, fmt.Errorf("instruction at offset %d: %w", offset, err)
		}
		instructions = append(instructions, insn)
		offset += insn.Length()
	}
	return instructions, nil
}

func decodeInstruction(code []byte, offset int, cp ConstantPool) (*Instruction, error) {
	insn := &Instruction{Offset: offset, Opcode: Opcode(code[offset])}
	if insn.Opcode > OpJsrW {
		return nil, ErrUnknownOpcode
	}

	start := offset + 1
	var n int
	switch insn.Opcode {
	case OpTableswitch, OpLookupswitch:
		pad := (4 - start%4) % 4
		header := 8
		if insn.Opcode == OpTableswitch {
			header = 12
		}
		if start+pad+header > len(code) {
			return nil, ErrTruncated
		}
		body := code[start+pad:]
		if insn.Opcode == OpTableswitch {
			low := int32(binary.BigEndian.Uint32(body[4:8]))
			high := int32(binary.BigEndian.Uint32(body[8:12]))
			if high < low {
				return nil, fmt.Errorf("tableswitch low %d > high %d", low, high)
			}
			n = pad + 12 + int(int64(high)-int64(low)+1)*4
		} else {
			pairs := int32(binary.BigEndian.Uint32(body[4:8]))
			if pairs < 0 {
				return nil, fmt.Errorf("lookupswitch with %d pairs", pairs)
			}
			n = pad + 8 + int(pairs)*8
		}
	case OpWide:
		if start >= len(code) {
			return nil, ErrTruncated
		}
		insn.Wide = true
		insn.Opcode = Opcode(code[start])
		start++
		switch {
		case insn.Opcode == OpIinc:
			n = 4
		case insn.Opcode >= OpIload && insn.Opcode <= OpAload,
			insn.Opcode >= OpIstore && insn.Opcode <= OpAstore,
			insn.Opcode == OpRet:
			n = 2
		default:
			return nil, fmt.Errorf("wide %s: %w", insn.Opcode, ErrUnknownOpcode)
		}
	default:
		n = operandLength(insn.Opcode)
	}

	if start+n > len(code) {
		return nil, ErrTruncated
	}
	insn.Operands = code[start : start+n]

	if err := insn.resolve(cp); err != nil {
		return nil, err
	}
	return insn, nil
}

func (i *Instruction) resolve(cp ConstantPool) error {
	var err error
	switch i.Opcode {
	case OpLdc:
		i.Index = uint16(i.Operands[0])
		i.Entry, err = cp.Get(i.Index)
	case OpLdcW, OpLdc2W:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		i.Entry, err = cp.Get(i.Index)
	case OpGetstatic, OpPutstatic, OpGetfield, OpPutfield:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		i.Entry, err = resolve[*ConstantFieldrefInfo](cp, i.Index, ConstantFieldref)
	case OpInvokevirtual:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		i.Entry, err = resolve[*ConstantMethodrefInfo](cp, i.Index, ConstantMethodref)
	case OpInvokespecial, OpInvokestatic:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		var ref MemberRef
		if ref, err = cp.resolveMemberRef(i.Index, ConstantMethodref, ConstantInterfaceMethodref); err == nil {
			i.Entry = ref.(ConstantPoolEntry)
		}
	case OpInvokeinterface:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		i.Entry, err = resolve[*ConstantInterfaceMethodrefInfo](cp, i.Index, ConstantInterfaceMethodref)
	case OpInvokedynamic:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		i.Entry, err = resolve[*ConstantInvokeDynamicInfo](cp, i.Index, ConstantInvokeDynamic)
	case OpNew, OpAnewarray, OpCheckcast, OpInstanceof, OpMultianewarray:
		i.Index = binary.BigEndian.Uint16(i.Operands)
		i.Entry, err = cp.ResolveClass(i.Index)
	}
	if err != nil {
		i.Entry = nil
	}
	return err
}
