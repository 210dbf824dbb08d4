package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

const androidYAML = `plugins:
  - id: com.google.gms.google-services
    version: 4.4.0
    apply: false
repositories:
  - google
  - mavenCentral
tasks:
  - name: clean
    delete: [build]
`

const androidHCL = `
plugin "com.google.gms.google-services" {
  version = "4.4.0"
  apply   = false
}

repository "google" {}
repository "mavenCentral" {}

task "clean" {
  delete = ["build"]
}
`

func writeDescriptor(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	path := writeDescriptor(t, "buildscript.yaml", androidYAML)
	d, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, path, d.Path)
	require.Equal(t, []PluginReference{{ID: "com.google.gms.google-services", Version: "4.4.0", Apply: false}}, d.Plugins)
	require.Equal(t, []RepositorySource{{Name: "google"}, {Name: "mavenCentral"}}, d.Repositories)
	require.Equal(t, []TaskSpec{{Name: "clean", Delete: []string{"build"}}}, d.Tasks)
}

func TestParseHCLMatchesYAML(t *testing.T) {
	t.Parallel()

	fromYAML, err := ParseBytes("buildscript.yaml", []byte(androidYAML))
	require.NoError(t, err)
	fromHCL, err := ParseBytes("buildscript.hcl", []byte(androidHCL))
	require.NoError(t, err)

	require.Equal(t, fromYAML.Plugins, fromHCL.Plugins)
	require.Equal(t, fromYAML.Repositories, fromHCL.Repositories)
	require.Equal(t, fromYAML.Tasks, fromHCL.Tasks)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		file     string
		contents string
		assert   func(t *testing.T, err error)
	}{
		{
			name:     "invalid yaml returns parse error with line",
			file:     "buildscript.yaml",
			contents: "plugins:\n  - id: a\n    version: [1\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Positive(t, parseErr.Line)
			},
		},
		{
			name:     "invalid hcl returns parse error",
			file:     "buildscript.hcl",
			contents: "plugin \"a\" {\n  version = \n}\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Positive(t, parseErr.Line)
			},
		},
		{
			name:     "unknown hcl block is rejected",
			file:     "buildscript.hcl",
			contents: "allprojects {}\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "misspelled yaml plugin key is rejected",
			file:     "buildscript.yaml",
			contents: "plugins:\n  - id: com.android.application\n    version: 8.2.0\n    aply: false\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 4, parseErr.Line)
				require.Contains(t, parseErr.Error(), "aply")
			},
		},
		{
			name:     "misspelled hcl plugin key is rejected",
			file:     "buildscript.hcl",
			contents: "plugin \"com.android.application\" {\n  version = \"8.2.0\"\n  aply = false\n}\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "unknown yaml repository key is rejected",
			file:     "buildscript.yaml",
			contents: "repositories:\n  - name: internal\n    uri: https://maven.example.com\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Equal(t, 3, parseErr.Line)
			},
		},
		{
			name:     "unknown yaml top-level key is rejected",
			file:     "buildscript.yaml",
			contents: "plugins: []\nallprojects: {}\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "key case matters in yaml",
			file:     "buildscript.yaml",
			contents: "plugins:\n  - id: com.android.application\n    version: 8.2.0\n    Apply: true\n",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Error(), "Apply")
			},
		},
		{
			name:     "unsupported extension",
			file:     "build.gradle.kts",
			contents: "plugins {}",
			assert: func(t *testing.T, err error) {
				var parseErr *bserrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, ".kts")
			},
		},
		{
			name:     "missing version is malformed",
			file:     "buildscript.yaml",
			contents: "plugins:\n  - id: com.example.plugin\n",
			assert: func(t *testing.T, err error) {
				var malformed *bserrors.MalformedDescriptorError
				require.ErrorAs(t, err, &malformed)
				require.Equal(t, "plugins[0].version", malformed.Field)
				require.Equal(t, "buildscript.yaml", malformed.Path)
			},
		},
		{
			name:     "empty identifier is malformed",
			file:     "buildscript.yaml",
			contents: "plugins:\n  - id: \"\"\n    version: 1.0.0\n",
			assert: func(t *testing.T, err error) {
				var malformed *bserrors.MalformedDescriptorError
				require.ErrorAs(t, err, &malformed)
				require.Equal(t, "plugins[0].id", malformed.Field)
			},
		},
		{
			name:     "unknown repository without url is malformed",
			file:     "buildscript.yaml",
			contents: "repositories:\n  - jcenter\n",
			assert: func(t *testing.T, err error) {
				var malformed *bserrors.MalformedDescriptorError
				require.ErrorAs(t, err, &malformed)
				require.Equal(t, "repositories[0].url", malformed.Field)
			},
		},
		{
			name:     "task without actions is malformed",
			file:     "buildscript.yaml",
			contents: "tasks:\n  - name: noop\n",
			assert: func(t *testing.T, err error) {
				var malformed *bserrors.MalformedDescriptorError
				require.ErrorAs(t, err, &malformed)
				require.Equal(t, "tasks[0]", malformed.Field)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := ParseBytes(tc.file, []byte(tc.contents))
			require.Error(t, err)
			require.Nil(t, d)
			tc.assert(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Parse(filepath.Join(t.TempDir(), "buildscript.yaml"))
	var parseErr *bserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestApplyDefaultsToTrue(t *testing.T) {
	t.Parallel()

	d, err := ParseBytes("buildscript.yaml", []byte("plugins:\n  - id: com.android.application\n    version: 8.2.0\n"))
	require.NoError(t, err)
	require.True(t, d.Plugins[0].Apply)

	d, err = ParseBytes("buildscript.hcl", []byte("plugin \"com.android.application\" {\n  version = \"8.2.0\"\n}\n"))
	require.NoError(t, err)
	require.True(t, d.Plugins[0].Apply)
}

func TestExplicitApplyIsHonoured(t *testing.T) {
	t.Parallel()

	for _, apply := range []bool{true, false} {
		contents := fmt.Sprintf("plugins:\n  - id: com.android.application\n    version: 8.2.0\n    apply: %t\n", apply)
		d, err := ParseBytes("buildscript.yaml", []byte(contents))
		require.NoError(t, err)
		require.Equal(t, apply, d.Plugins[0].Apply)

		contents = fmt.Sprintf("plugin \"com.android.application\" {\n  version = \"8.2.0\"\n  apply = %t\n}\n", apply)
		d, err = ParseBytes("buildscript.hcl", []byte(contents))
		require.NoError(t, err)
		require.Equal(t, apply, d.Plugins[0].Apply)
	}
}

func TestBuiltinPluginNeedsNoVersion(t *testing.T) {
	t.Parallel()

	d, err := ParseBytes("buildscript.yaml", []byte("plugins:\n  - id: java\n    builtin: true\n"))
	require.NoError(t, err)
	require.Equal(t, []PluginReference{{ID: "java", Apply: true, Builtin: true}}, d.Plugins)
}

func TestRepositoryMappingForm(t *testing.T) {
	t.Parallel()

	contents := `repositories:
  - google
  - name: internal
    url: https://maven.example.com/releases
`
	d, err := ParseBytes("buildscript.yml", []byte(contents))
	require.NoError(t, err)
	require.Equal(t, []RepositorySource{
		{Name: "google"},
		{Name: "internal", URL: "https://maven.example.com/releases"},
	}, d.Repositories)
}

func TestEmptyDescriptorIsValid(t *testing.T) {
	t.Parallel()

	d, err := ParseBytes("buildscript.yaml", nil)
	require.NoError(t, err)
	require.Empty(t, d.Plugins)
	require.Empty(t, d.Repositories)
}
