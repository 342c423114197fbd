package classfile

import "strings"

type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

// String renders the type in source form, e.g. "int", "java.lang.String[][]".
func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool {
	return ft.ArrayDepth > 0
}

func (ft *FieldType) IsPrimitive() bool {
	return ft.BaseType != "" && ft.ArrayDepth == 0
}

func (ft *FieldType) IsReference() bool {
	return ft.ClassName != "" || ft.ArrayDepth > 0
}

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void.
	ReturnType *FieldType
}

// ParameterList renders "(int, java.lang.String)".
func (md *MethodDescriptor) ParameterList() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (md *MethodDescriptor) String() string {
	if md.ReturnType == nil {
		return md.ParameterList() + " void"
	}
	return md.ParameterList() + " " + md.ReturnType.String()
}

func ParseFieldDescriptor(desc string) *FieldType {
	ft, consumed := parseFieldType(desc, 0)
	if ft == nil || consumed != len(desc) {
		return nil
	}
	return ft
}

func ParseMethodDescriptor(desc string) *MethodDescriptor {
	if len(desc) == 0 || desc[0] != '(' {
		return nil
	}

	md := &MethodDescriptor{}
	i := 1

	for i < len(desc) && desc[i] != ')' {
		ft, consumed := parseFieldType(desc, i)
		if ft == nil {
			return nil
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}

	if i >= len(desc) || desc[i] != ')' {
		return nil
	}
	i++

	if i >= len(desc) {
		return nil
	}
	if desc[i] == 'V' {
		if i+1 != len(desc) {
			return nil
		}
		return md
	}
	ret, consumed := parseFieldType(desc, i)
	if ret == nil || i+consumed != len(desc) {
		return nil
	}
	md.ReturnType = ret
	return md
}

func parseFieldType(desc string, start int) (*FieldType, int) {
	if start >= len(desc) {
		return nil, 0
	}

	ft := &FieldType{}
	i := start

	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}

	if i >= len(desc) {
		return nil, 0
	}

	switch desc[i] {
	case 'B':
		ft.BaseType = "byte"
	case 'C':
		ft.BaseType = "char"
	case 'D':
		ft.BaseType = "double"
	case 'F':
		ft.BaseType = "float"
	case 'I':
		ft.BaseType = "int"
	case 'J':
		ft.BaseType = "long"
	case 'S':
		ft.BaseType = "short"
	case 'Z':
		ft.BaseType = "boolean"
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon == -1 {
			return nil, 0
		}
		ft.ClassName = desc[i+1 : i+semicolon]
		return ft, i - start + semicolon + 1
	default:
		return nil, 0
	}
	return ft, i - start + 1
}

// SignatureFromDescriptor turns "(ILjava/lang/String;)V" into
// "(int, java.lang.String)". Unparseable descriptors are returned as is.
func SignatureFromDescriptor(desc string) string {
	md := ParseMethodDescriptor(desc)
	if md == nil {
		return desc
	}
	return md.ParameterList()
}

// ReturnTypeFromDescriptor returns the source form of the return type, or ""
// for void and unparseable descriptors.
func ReturnTypeFromDescriptor(desc string) string {
	md := ParseMethodDescriptor(desc)
	if md == nil || md.ReturnType == nil {
		return ""
	}
	return md.ReturnType.String()
}

// TypeFromDescriptor returns the source form of a field descriptor.
func TypeFromDescriptor(desc string) string {
	ft := ParseFieldDescriptor(desc)
	if ft == nil {
		return desc
	}
	return ft.String()
}

// ClassesInDescriptor lists the source-form class names referenced by a
// field or method descriptor, in order of appearance, without duplicates.
func ClassesInDescriptor(desc string) []string {
	var classes []string
	seen := make(map[string]bool)
	for i := 0; i < len(desc); i++ {
		if desc[i] != 'L' {
			continue
		}
		end := strings.IndexByte(desc[i:], ';')
		if end == -1 {
			break
		}
		name := InternalToSourceName(desc[i+1 : i+end])
		if !seen[name] {
			seen[name] = true
			classes = append(classes, name)
		}
		i += end
	}
	return classes
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// SourceClassName converts a CONSTANT_Class name to source form. Array
// classes are rendered with brackets: "[Ljava/lang/String;" -> "java.lang.String[]".
func SourceClassName(internal string) string {
	if strings.HasPrefix(internal, "[") {
		if ft := ParseFieldDescriptor(internal); ft != nil {
			return ft.String()
		}
	}
	return InternalToSourceName(internal)
}

// PackageName returns the package part of a source-form class name.
func PackageName(className string) string {
	if i := strings.LastIndexByte(className, '.'); i != -1 {
		return className[:i]
	}
	return ""
}

// SimpleClassName strips the package and any enclosing classes:
// "a.b.Outer$Inner" -> "Inner".
func SimpleClassName(className string) string {
	name := className[strings.LastIndexByte(className, '.')+1:]
	return name[strings.LastIndexByte(name, '$')+1:]
}
