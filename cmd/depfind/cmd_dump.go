package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/depfind/classfile"
)

func newDumpCmd() *cobra.Command {
	var constants bool

	cmd := &cobra.Command{
		Use:   "dump <file.class>",
		Short: "Print the declarations found in a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if ext := filepath.Ext(filename); ext != ".class" {
				return fmt.Errorf("unsupported file extension: %s (expected .class)", ext)
			}

			cf, err := classfile.ParseFile(filename)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			return dump(cmd.OutOrStdout(), cf, constants)
		},
	}

	cmd.Flags().BoolVar(&constants, "constants", false, "also list the constant pool")

	return cmd
}

func dump(w io.Writer, cf *classfile.Classfile, constants bool) error {
	fmt.Fprintf(w, "%s {\n", cf.Declaration())
	if src := cf.SourceFile(); src != "" {
		fmt.Fprintf(w, "    // source: %s\n", src)
	}
	fmt.Fprintf(w, "    // version: %d.%d\n", cf.MajorVersion(), cf.MinorVersion())

	for _, field := range cf.Fields() {
		fmt.Fprintf(w, "    %s;\n", field.Declaration())
	}
	for _, method := range cf.Methods() {
		fmt.Fprintf(w, "    %s;\n", method.Declaration())
	}
	for _, inner := range cf.InnerClasses() {
		fmt.Fprintf(w, "    // inner: %s\n", inner.InnerClassName())
	}
	_, err := fmt.Fprintln(w, "}")
	if err != nil || !constants {
		return err
	}

	for index, entry := range cf.ConstantPool().All() {
		if _, err := fmt.Fprintf(w, "#%d = %s %s\n", index, entry.Tag(), describeConstant(entry)); err != nil {
			return err
		}
	}
	return nil
}

func describeConstant(entry classfile.ConstantPoolEntry) string {
	switch e := entry.(type) {
	case *classfile.ConstantUtf8Info:
		return fmt.Sprintf("%q", e.Value)
	case *classfile.ConstantIntegerInfo:
		return fmt.Sprint(e.Value)
	case *classfile.ConstantFloatInfo:
		return fmt.Sprint(e.Value)
	case *classfile.ConstantLongInfo:
		return fmt.Sprint(e.Value)
	case *classfile.ConstantDoubleInfo:
		return fmt.Sprint(e.Value)
	case *classfile.ConstantClassInfo:
		return e.ClassName()
	case *classfile.ConstantStringInfo:
		return fmt.Sprintf("%q", e.Value)
	case *classfile.ConstantNameAndTypeInfo:
		return e.Name + ":" + e.Descriptor
	case classfile.MemberRef:
		return e.FeatureName()
	case *classfile.ConstantMethodTypeInfo:
		return e.Descriptor
	case *classfile.ConstantModuleInfo:
		return e.Name
	case *classfile.ConstantPackageInfo:
		return e.Name
	default:
		return ""
	}
}
