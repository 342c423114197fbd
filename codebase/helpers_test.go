package codebase

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cft "github.com/dhamidi/depfind/classfile/classfiletest"
)

func shapeBuilder() *cft.Builder {
	b := cft.New("com/example/Shape")
	b.AddField(0x0002, "width", "I")
	b.AddMethod(0x0001, "<init>", "()V")
	locals := b.Attribute("LocalVariableTable", cft.U2(1),
		cft.U2(0), cft.U2(1), cft.U2(b.Utf8("factor")), cft.U2(b.Utf8("I")), cft.U2(1))
	b.AddMethod(0x0001, "scale", "(I)V", b.Code(1, 2, cft.U1(0xb1), nil, locals))
	b.AddMethod(0x0001, "area", "()I")
	return b
}

func mainBuilder() *cft.Builder {
	b := cft.New("com/example/app/Main")
	area := b.Methodref("com/example/Shape", "area", "()I")
	b.AddMethod(0x0009, "main", "([Ljava/lang/String;)V",
		b.Code(1, 1, cft.Concat(cft.U1(0x01), cft.U1(0xb6), cft.U2(area), cft.U1(0x57), cft.U1(0xb1)), nil))
	return b
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// jarBytes builds an archive from entry names to contents.
func jarBytes(t *testing.T, entries map[string][]byte, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
