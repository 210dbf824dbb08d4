package resolve

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexisbeaulieu97/buildscript/internal/descriptor"
)

// Source is a repository that can answer whether it hosts a plugin.
type Source interface {
	Name() string
	Has(ctx context.Context, plugin descriptor.PluginReference) (bool, error)
}

// HTTPSource probes a Maven-layout repository for a plugin marker POM.
type HTTPSource struct {
	name    string
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a source for repo. A nil client uses http.DefaultClient.
func NewHTTPSource(repo descriptor.RepositorySource, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		name:    repo.Name,
		baseURL: strings.TrimRight(repo.URL, "/"),
		client:  client,
	}
}

// SourcesFor builds HTTP sources for repos, keeping declaration order.
func SourcesFor(repos []descriptor.RepositorySource, client *http.Client) []Source {
	out := make([]Source, 0, len(repos))
	for _, repo := range repos {
		out = append(out, NewHTTPSource(repo, client))
	}
	return out
}

// Name returns the repository name as declared.
func (s *HTTPSource) Name() string {
	return s.name
}

// MarkerURL returns the marker POM location for plugin within this source.
func (s *HTTPSource) MarkerURL(plugin descriptor.PluginReference) string {
	return s.baseURL + "/" + MarkerPath(plugin)
}

// Has issues a HEAD request for the plugin marker. 200 means present,
// 404 and 410 mean absent, anything else is an error.
func (s *HTTPSource) Has(ctx context.Context, plugin descriptor.PluginReference) (bool, error) {
	target := s.MarkerURL(plugin)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("build request for %s: %w", target, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", target, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound, http.StatusGone:
		return false, nil
	default:
		return false, fmt.Errorf("probe %s: unexpected status %s", target, resp.Status)
	}
}

// MarkerPath returns the repository-relative path of a plugin marker POM:
// <group path>/<id>.gradle.plugin/<version>/<id>.gradle.plugin-<version>.pom
func MarkerPath(plugin descriptor.PluginReference) string {
	artifact := plugin.ID + ".gradle.plugin"
	return strings.Join([]string{
		strings.ReplaceAll(plugin.ID, ".", "/"),
		artifact,
		plugin.Version,
		artifact + "-" + plugin.Version + ".pom",
	}, "/")
}
