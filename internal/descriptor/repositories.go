package descriptor

// Well-known repository names accepted without an explicit URL.
var wellKnownRepositories = map[string]string{
	"google":             "https://dl.google.com/dl/android/maven2",
	"mavenCentral":       "https://repo.maven.apache.org/maven2",
	"central":            "https://repo.maven.apache.org/maven2",
	"gradlePluginPortal": "https://plugins.gradle.org/m2",
}

// WellKnownURL returns the canonical URL for a well-known repository name.
func WellKnownURL(name string) (string, bool) {
	url, ok := wellKnownRepositories[name]
	return url, ok
}

// resolvedURL returns the explicit URL, falling back to the well-known table.
func (r RepositorySource) resolvedURL() string {
	if r.URL != "" {
		return r.URL
	}
	url, _ := WellKnownURL(r.Name)
	return url
}
