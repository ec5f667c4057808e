package linkstate

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/wasmconform/harness/internal/errkind"
	"github.com/wasmconform/harness/internal/modules"
)

func installed(id string) (modules.ExportSet, modules.EnvID) {
	return modules.ExportSet{
		Functions: map[string]modules.FuncHandle{"f": "handle:" + id + ":f"},
		Globals:   map[string]modules.GlobalHandle{"g": "handle:" + id + ":g"},
	}, modules.EnvID(1)
}

func TestLastUndefinedUntilFirstInstall(t *testing.T) {
	ls := New()
	_, ok := ls.Last()
	require.False(t, ok)

	exports, env := installed("a")
	ls.Install("a", exports, env)
	last, ok := ls.Last()
	require.True(t, ok)
	require.Equal(t, "a", last)
}

func TestResolveFuncByExplicitIDAndByLast(t *testing.T) {
	ls := New()
	exports, env := installed("a")
	ls.Install("a", exports, env)

	id := "a"
	f, gotEnv, err := ls.ResolveFunc(&id, "f")
	require.NoError(t, err)
	require.Equal(t, modules.FuncHandle("handle:a:f"), f)
	require.Equal(t, env, gotEnv)

	f2, _, err := ls.ResolveFunc(nil, "f")
	require.NoError(t, err)
	require.Equal(t, f, f2)
}

func TestResolveFuncUnboundLastModule(t *testing.T) {
	ls := New()
	_, _, err := ls.ResolveFunc(nil, "f")
	require.Error(t, err)
	ek := err.(errkind.ErrKind)
	require.Equal(t, errkind.TagUnboundLastModule, ek.Tag)
}

func TestResolveFuncUnboundModule(t *testing.T) {
	ls := New()
	missing := "nope"
	_, _, err := ls.ResolveFunc(&missing, "f")
	require.Error(t, err)
	ek := err.(errkind.ErrKind)
	require.Equal(t, errkind.TagUnboundModule, ek.Tag)
}

func TestResolveFuncUnboundName(t *testing.T) {
	ls := New()
	exports, env := installed("a")
	ls.Install("a", exports, env)
	id := "a"
	_, _, err := ls.ResolveFunc(&id, "missing")
	require.Error(t, err)
	ek := err.(errkind.ErrKind)
	require.Equal(t, errkind.TagUnboundName, ek.Tag)
}

func TestRegisterAliasesExistingModule(t *testing.T) {
	ls := New()
	exports, env := installed("a")
	ls.Install("a", exports, env)

	require.NoError(t, ls.Register("alias", nil))
	f, _, err := ls.ResolveFunc(strPtr("alias"), "f")
	require.NoError(t, err)
	require.Equal(t, modules.FuncHandle("handle:a:f"), f)
}

func TestRegisterDoesNotCreateNewEnvironment(t *testing.T) {
	ls := New()
	exports, env := installed("a")
	ls.Install("a", exports, env)
	require.NoError(t, ls.Register("alias", nil))

	// aliasing does not introduce a second tracked environment
	require.True(t, ls.HasEnv(env))
}

func TestRegisterUnboundModule(t *testing.T) {
	ls := New()
	missing := "nope"
	err := ls.Register("alias", &missing)
	require.Error(t, err)
}

func TestModuleIDsReflectsEveryInstall(t *testing.T) {
	ls := New()
	aExports, aEnv := installed("a")
	bExports, bEnv := installed("b")
	ls.Install("a", aExports, aEnv)
	ls.Install("b", bExports, bEnv)

	got := ls.ModuleIDs()
	sort.Strings(got)
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ModuleIDs() mismatch (-want +got):\n%s", diff)
	}
}

func strPtr(s string) *string { return &s }
