package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/dhamidi/depfind/classfile/classfiletest"
	"github.com/dhamidi/depfind/config"
	"github.com/dhamidi/depfind/dependency"
)

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	shape := New("com/example/Shape")
	shape.AddField(0x0002, "width", "I")
	shape.AddMethod(0x0001, "area", "()I")
	writeClass(t, filepath.Join(dir, "com", "example", "Shape.class"), shape.Bytes())

	app := New("com/example/app/Main")
	area := app.Methodref("com/example/Shape", "area", "()I")
	app.AddMethod(0x0009, "main", "([Ljava/lang/String;)V",
		app.Code(1, 1, Concat(U1(0x01), U1(0xb6), U2(area), U1(0x57), U1(0xb1)), nil))
	writeClass(t, filepath.Join(dir, "com", "example", "app", "Main.class"), app.Bytes())

	return dir
}

func writeClass(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDumpCommand(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, "dump", filepath.Join(dir, "com", "example", "Shape.class"))
	require.NoError(t, err)
	assert.Equal(t, `public class com.example.Shape {
    // version: 61.0
    private int width;
    public int area();
}
`, out)
}

func TestDumpCommandConstants(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, "dump", "--constants", filepath.Join(dir, "com", "example", "app", "Main.class"))
	require.NoError(t, err)
	assert.Contains(t, out, "= Methodref com.example.Shape.area()\n")
	assert.Contains(t, out, "= Class com.example.app.Main\n")
}

func TestDumpCommandRejectsOtherFiles(t *testing.T) {
	_, err := run(t, "dump", "Shape.java")
	assert.ErrorContains(t, err, "unsupported file extension: .java")
}

func TestSymbolsCommand(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, "symbols", "--kinds", dir)
	require.NoError(t, err)
	assert.Equal(t, `class	com.example.Shape
field	com.example.Shape.width
method	com.example.Shape.area()
class	com.example.app.Main
method	com.example.app.Main.main(java.lang.String[])
`, out)
}

func TestSymbolsCommandHonoursConfig(t *testing.T) {
	dir := fixtureDir(t)
	cfgPath := filepath.Join(t.TempDir(), "depfind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
symbols:
  fields: false
  excludes: ["Main"]
`), 0o644))

	out, err := run(t, "--config", cfgPath, "symbols", dir)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Shape\ncom.example.Shape.area()\n", out)
}

func TestGraphCommand(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, "graph", "--indent", "  ",
		"--scope-includes", `^com\.example`,
		"--filter-excludes", `^java\.`,
		dir)
	require.NoError(t, err)
	assert.Equal(t, `com.example
  Shape
    <-- com.example.app.Main
    area()
      <-- com.example.app.Main.main(java.lang.String[])
    width
com.example.app
  Main
    --> com.example.Shape
    main(java.lang.String[])
      --> com.example.Shape.area()
`, out)
}

func TestScanCommand(t *testing.T) {
	dir := fixtureDir(t)
	writeClass(t, filepath.Join(dir, "Broken.class"), []byte{0xca, 0xfe, 0xba, 0xbe})

	jar := filepath.Join(dir, "lib.jar")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("com/example/Lib.class")
	require.NoError(t, err)
	_, err = w.Write(New("com/example/Lib").Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	writeClass(t, jar, buf.Bytes())

	out, err := run(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Classes found: 3\n")
	assert.Contains(t, out, "Errors: 1\n")
	assert.Contains(t, out, "Broken.class")
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "depfind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("loader:\n  workers: 0\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "scan", t.TempDir())
	assert.ErrorContains(t, err, "loader workers must be at least 1")
}

func TestTraversalStrategyFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scope.Includes = []string{"("}
	_, err := traversalStrategy(cfg.Scope, cfg.Filter)
	assert.Error(t, err)

	cfg = config.Default()
	strategy, err := traversalStrategy(cfg.Scope, cfg.Filter)
	require.NoError(t, err)
	assert.NotNil(t, strategy)

	criteria, err := selectionCriteria(config.SelectionConfig{Classes: true, Includes: []string{"x"}})
	require.NoError(t, err)
	assert.IsType(t, &dependency.RegularExpressionSelectionCriteria{}, criteria)
}
