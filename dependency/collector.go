package dependency

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/depfind/classfile"
)

var log = commonlog.GetLogger("depfind.dependency")

// CodeDependencyCollector is a class file visitor that records the
// symbolic references it finds as graph edges:
//
//   - class -> class for the superclass, interfaces, class annotations and
//     every class entry in the constant pool
//   - feature -> class for descriptor types, throws clauses, catch types,
//     local variable types and annotations
//   - feature -> feature for field and method references in bytecode
//
// Several collectors may share one NodeFactory concurrently.
type CodeDependencyCollector struct {
	classfile.VisitorBase
	factory *NodeFactory
	class   *ClassNode
	current Node
}

func NewCodeDependencyCollector(factory *NodeFactory) *CodeDependencyCollector {
	c := &CodeDependencyCollector{factory: factory}
	c.Bind(c)
	return c
}

func (c *CodeDependencyCollector) Factory() *NodeFactory { return c.factory }

func (c *CodeDependencyCollector) VisitClassfile(cf *classfile.Classfile) {
	log.Debugf("collecting dependencies of %s", cf.ClassName())

	c.class = c.factory.CreateClass(cf.ClassName(), true)
	c.current = c.class

	if super := cf.Superclass(); super != nil {
		c.dependOnClass(super.Name)
	}
	for _, iface := range cf.Interfaces() {
		c.dependOnClass(iface.Name)
	}
	cf.ConstantPool().Accept(c)

	c.VisitorBase.VisitClassfile(cf)
	c.current = c.class
}

// VisitConstantPool only looks at class entries; member references are
// picked up from the instructions that use them.
func (c *CodeDependencyCollector) VisitConstantPool(cp classfile.ConstantPool) {
	for _, entry := range cp.All() {
		if class, ok := entry.(*classfile.ConstantClassInfo); ok {
			c.VisitConstantClassInfo(class)
		}
	}
}

func (c *CodeDependencyCollector) VisitConstantClassInfo(entry *classfile.ConstantClassInfo) {
	c.dependOnClass(entry.Name)
}

func (c *CodeDependencyCollector) VisitField(field *classfile.FieldInfo) {
	c.current = c.factory.CreateFeature(field.FullSignature(), true)
	c.dependOnDescriptor(field.Descriptor())
	c.VisitorBase.VisitField(field)
	c.current = c.class
}

func (c *CodeDependencyCollector) VisitMethod(method *classfile.MethodInfo) {
	c.current = c.factory.CreateFeature(method.FullSignature(), true)
	c.dependOnDescriptor(method.Descriptor())
	c.VisitorBase.VisitMethod(method)
	c.current = c.class
}

func (c *CodeDependencyCollector) VisitInstruction(insn *classfile.Instruction) {
	switch entry := insn.Entry.(type) {
	case classfile.MemberRef:
		// Members of array classes, such as clone() in an enum's values(),
		// are inherited from Object; only the element type is a dependency.
		if class := entry.ClassInfo(); strings.HasPrefix(class.Name, "[") {
			c.dependOnDescriptor(class.Name)
			return
		}
		c.current.AddDependency(c.factory.CreateFeature(entry.FeatureName(), false))
	case *classfile.ConstantClassInfo:
		c.dependOnClass(entry.Name)
	}
}

func (c *CodeDependencyCollector) VisitExceptionHandler(handler *classfile.ExceptionHandler) {
	if handler.CatchType != nil {
		c.dependOnClass(handler.CatchType.Name)
	}
}

func (c *CodeDependencyCollector) VisitLocalVariable(local *classfile.LocalVariable) {
	c.dependOnDescriptor(local.Descriptor)
}

func (c *CodeDependencyCollector) VisitAnnotation(annotation *classfile.Annotation) {
	c.dependOnDescriptor(annotation.Type)
	c.VisitorBase.VisitAnnotation(annotation)
}

func (c *CodeDependencyCollector) VisitTypeAnnotation(annotation *classfile.TypeAnnotation) {
	c.dependOnDescriptor(annotation.Type)
	c.VisitorBase.VisitTypeAnnotation(annotation)
}

func (c *CodeDependencyCollector) VisitElementValue(value *classfile.ElementValue) {
	switch value.Tag {
	case 'e':
		c.dependOnDescriptor(value.EnumTypeName)
	case 'c':
		c.dependOnDescriptor(value.ClassInfo)
	}
	c.VisitorBase.VisitElementValue(value)
}

// dependOnClass takes an internal class name; array classes depend on
// their element class and primitive arrays on nothing.
func (c *CodeDependencyCollector) dependOnClass(internal string) {
	if strings.HasPrefix(internal, "[") {
		c.dependOnDescriptor(internal)
		return
	}
	c.addClass(classfile.InternalToSourceName(internal))
}

func (c *CodeDependencyCollector) dependOnDescriptor(descriptor string) {
	for _, name := range classfile.ClassesInDescriptor(descriptor) {
		c.addClass(name)
	}
}

// addClass relies on AddDependency ignoring self edges for references to
// the class being collected.
func (c *CodeDependencyCollector) addClass(name string) {
	c.current.AddDependency(c.factory.CreateClass(name, false))
}
