package locator

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/perfgo/lingsgrade/model"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("fn main() {}\n"), 0644))
	}
}

func names(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	sort.Strings(out)
	return out
}

func TestShape(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		path string
		want model.ProjectShape
	}{
		{name: "plain exercises dir", path: "/home/u/rustlings/exercises", want: model.ShapeStandalone},
		{name: "marker as dir", path: "/home/u/learning-lm-rs", want: model.ShapeManaged},
		{name: "marker inside file path", path: "/home/u/learning-lm-rs/src/model.rs", want: model.ShapeManaged},
		{name: "marker as substring", path: "/tmp/my-learning-lm-rs-copy", want: model.ShapeManaged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.Shape(tt.path))
		})
	}
}

func TestFindStandalone(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.rs",
		"b.rs",
		"test_helper.rs",
		"helper_utils.rs",
		"notes.txt",
		"nested/deep/c.rs",
		"nested/test_d.rs",
	)

	files := DefaultPolicy().Find(root, model.ShapeStandalone)
	require.Equal(t, []string{"a.rs", "b.rs", "c.rs"}, names(files))
}

func TestFindSkipsBuildDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.rs",
		"target/debug/a.rs",
		"nested/target/x.rs",
		"nested/target/deep/y.rs",
		"targets/kept.rs",
		"my_target/kept2.rs",
	)

	files := DefaultPolicy().Find(root, model.ShapeStandalone)
	require.Equal(t, []string{"a.rs", "kept.rs", "kept2.rs"}, names(files))
}

func TestFindManaged(t *testing.T) {
	root := filepath.Join(t.TempDir(), "learning-lm-rs")
	writeTree(t, root,
		"src/model.rs",
		"src/operators.rs",
		"src/main.rs",
		"src/tensor.rs",
		"src/my_model.rs",
		"target/debug/model.rs",
	)

	p := DefaultPolicy()
	shape := p.Shape(root)
	require.Equal(t, model.ShapeManaged, shape)

	files := p.Find(root, shape)
	require.Equal(t, []string{"model.rs", "operators.rs"}, names(files))
}

func TestFindMissingRoot(t *testing.T) {
	files := DefaultPolicy().Find(filepath.Join(t.TempDir(), "does-not-exist"), model.ShapeStandalone)
	require.Empty(t, files)
}

func TestFindUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, "a.rs", "locked/b.rs")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	files := DefaultPolicy().Find(root, model.ShapeStandalone)
	require.Equal(t, []string{"a.rs"}, names(files))
}

func TestIncludes(t *testing.T) {
	p := DefaultPolicy()

	require.True(t, p.Includes("vecs1.rs", model.ShapeStandalone))
	require.False(t, p.Includes("test_vecs.rs", model.ShapeStandalone))
	require.False(t, p.Includes("helper_vecs.rs", model.ShapeStandalone))
	require.False(t, p.Includes("vecs1.txt", model.ShapeStandalone))
	require.True(t, p.Includes("model.rs", model.ShapeManaged))
	require.False(t, p.Includes("vecs1.rs", model.ShapeManaged))
}
