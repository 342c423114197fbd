package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"I", "int"},
		{"Z", "boolean"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[[J", "long[][]"},
		{"[Ljava/util/Map$Entry;", "java.util.Map$Entry[]"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft := ParseFieldDescriptor(tt.desc)
			require.NotNil(t, ft)
			assert.Equal(t, tt.want, ft.String())
		})
	}

	for _, bad := range []string{"", "Q", "Ljava/lang/String", "II", "["} {
		assert.Nil(t, ParseFieldDescriptor(bad), bad)
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	md := ParseMethodDescriptor("(I[Ljava/lang/String;J)Ljava/util/List;")
	require.NotNil(t, md)
	assert.Len(t, md.Parameters, 3)
	assert.Equal(t, "(int, java.lang.String[], long)", md.ParameterList())
	assert.Equal(t, "java.util.List", md.ReturnType.String())

	void := ParseMethodDescriptor("()V")
	require.NotNil(t, void)
	assert.Nil(t, void.ReturnType)
	assert.Equal(t, "() void", void.String())

	assert.Nil(t, ParseMethodDescriptor("I)V"))
	assert.Nil(t, ParseMethodDescriptor("(I"))
}

func TestClassesInDescriptor(t *testing.T) {
	assert.Equal(t,
		[]string{"java.lang.String", "com.example.Lib", "java.util.List"},
		ClassesInDescriptor("(ILjava/lang/String;[Lcom/example/Lib;Ljava/lang/String;)Ljava/util/List;"))
	assert.Empty(t, ClassesInDescriptor("(IJ)V"))
}

func TestClassNameHelpers(t *testing.T) {
	assert.Equal(t, "java.lang.String", SourceClassName("java/lang/String"))
	assert.Equal(t, "int[]", SourceClassName("[I"))
	assert.Equal(t, "java/lang/String", SourceToInternalName("java.lang.String"))
	assert.Equal(t, "java.lang", PackageName("java.lang.String"))
	assert.Equal(t, "", PackageName("Default"))
	assert.Equal(t, "Entry", SimpleClassName("java.util.Map$Entry"))
	assert.Equal(t, "Default", SimpleClassName("Default"))
}
