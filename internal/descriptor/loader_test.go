package descriptor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

func TestLoadPluginsAndRepositoriesExample(t *testing.T) {
	t.Parallel()

	d := &Descriptor{
		Plugins:      []PluginReference{{ID: "com.example.plugin", Version: "4.4.0", Apply: false}},
		Repositories: []RepositorySource{{Name: "google"}, {Name: "central"}},
	}

	plugins, err := d.LoadPlugins()
	require.NoError(t, err)
	require.Equal(t, []PluginReference{{ID: "com.example.plugin", Version: "4.4.0", Apply: false}}, plugins)

	repos, err := d.LoadRepositories()
	require.NoError(t, err)
	require.Len(t, repos, 2)
	require.Equal(t, "google", repos[0].Name)
	require.Equal(t, "https://dl.google.com/dl/android/maven2", repos[0].URL)
	require.Equal(t, "central", repos[1].Name)
	require.Equal(t, "https://repo.maven.apache.org/maven2", repos[1].URL)
}

func TestLoadPluginsRejectsMalformedEntries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		plugins []PluginReference
		field   string
	}{
		{name: "empty id", plugins: []PluginReference{{Version: "1.0"}}, field: "plugins[0].id"},
		{name: "missing version", plugins: []PluginReference{{ID: "a.b"}}, field: "plugins[0].version"},
		{name: "bad version", plugins: []PluginReference{{ID: "a.b", Version: "latest"}}, field: "plugins[0].version"},
		{name: "duplicate id", plugins: []PluginReference{{ID: "a.b", Version: "1"}, {ID: "a.b", Version: "2"}}, field: "plugins[1].id"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := &Descriptor{Path: "buildscript.yaml", Plugins: tc.plugins}
			plugins, err := d.LoadPlugins()
			require.Nil(t, plugins)

			var malformed *bserrors.MalformedDescriptorError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, tc.field, malformed.Field)
			require.Equal(t, "buildscript.yaml", malformed.Path)
		})
	}
}

func TestLoadRepositoriesAllowsEmpty(t *testing.T) {
	t.Parallel()

	repos, err := (&Descriptor{}).LoadRepositories()
	require.NoError(t, err)
	require.Empty(t, repos)
}

func TestLoadRepositoriesRejectsDuplicates(t *testing.T) {
	t.Parallel()

	d := &Descriptor{Repositories: []RepositorySource{{Name: "google"}, {Name: "google"}}}
	_, err := d.LoadRepositories()

	var malformed *bserrors.MalformedDescriptorError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "repositories[1].name", malformed.Field)
}

func TestLoadTasksReturnsCopies(t *testing.T) {
	t.Parallel()

	d := &Descriptor{Tasks: []TaskSpec{{Name: "clean", Delete: []string{"build"}}}}
	tasks, err := d.LoadTasks()
	require.NoError(t, err)

	tasks[0].Delete[0] = "elsewhere"
	require.Equal(t, "build", d.Tasks[0].Delete[0])
}

func TestLoadPluginsPreservesDeclarationOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfNDistinct(rapid.IntRange(0, 10_000), 1, 25, rapid.ID[int]).Draw(t, "ids")

		var b strings.Builder
		b.WriteString("plugins:\n")
		want := make([]PluginReference, 0, len(ids))
		for _, id := range ids {
			version := fmt.Sprintf("%d.%d.%d",
				rapid.IntRange(0, 20).Draw(t, "major"),
				rapid.IntRange(0, 20).Draw(t, "minor"),
				rapid.IntRange(0, 20).Draw(t, "patch"))
			apply := rapid.Bool().Draw(t, "apply")
			ref := PluginReference{ID: fmt.Sprintf("com.example.p%d", id), Version: version, Apply: apply}
			want = append(want, ref)
			fmt.Fprintf(&b, "  - id: %s\n    version: %q\n    apply: %t\n", ref.ID, ref.Version, ref.Apply)
		}

		d, err := ParseBytes("buildscript.yaml", []byte(b.String()))
		require.NoError(t, err)

		got, err := d.LoadPlugins()
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}
