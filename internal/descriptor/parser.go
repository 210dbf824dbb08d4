package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Parse loads a descriptor file from disk, validates it, and returns the resulting model.
// The syntax is chosen by extension: .yaml/.yml or .hcl.
func Parse(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bserrors.NewParseError(path, 0, err)
	}
	return ParseBytes(path, data)
}

// ParseBytes decodes and validates descriptor content; path selects the
// syntax and is used for error context only.
func ParseBytes(path string, data []byte) (*Descriptor, error) {
	var (
		d   *Descriptor
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err = decodeYAML(path, data)
	case ".hcl":
		d, err = decodeHCL(path, data)
	default:
		return nil, bserrors.NewParseError(path, 0, fmt.Errorf("unsupported descriptor format %q", filepath.Ext(path)))
	}
	if err != nil {
		return nil, err
	}

	d.Path = path
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeYAML(path string, data []byte) (*Descriptor, error) {
	var d Descriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, bserrors.NewParseError(path, extractLine(err), err)
	}
	return &d, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
