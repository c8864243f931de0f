package merging

import (
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/goccy/go-yaml"
	"github.com/titanous/json5"

	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
)

// LoadSpec reads a policy spec from a YAML (.yaml, .yml) or JSON5 (.json,
// .json5) file. When a sibling file <name>.local.<ext> exists it is merged
// over the base file, so local rules can override or extend shared ones.
func LoadSpec(path string) (*Spec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if formatFor(ext) == "" {
		return nil, errors.NewConfigError("policy",
			"unsupported policy file extension "+ext+" (want .yaml, .yml, .json or .json5)", nil)
	}

	base, err := readSpecDocument(path, ext)
	if err != nil {
		return nil, err
	}

	localPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".local" + filepath.Ext(path)
	if _, statErr := os.Stat(localPath); statErr == nil {
		override, err := readSpecDocument(localPath, ext)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(&base, override, mergo.WithOverride); err != nil {
			return nil, errors.NewConfigError("policy", "merging local overrides from "+localPath, err)
		}
		logging.Debug().Str("local", localPath).Msg("Merged policy with local overrides")
	}

	return decodeSpec(path, base)
}

// ParseSpec decodes a policy spec from YAML. JSON is valid YAML, so JSON
// specs are accepted too.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return &spec, nil
}

// MarshalSpec renders a spec as YAML.
func MarshalSpec(spec *Spec) ([]byte, error) {
	return yaml.Marshal(spec)
}

func formatFor(ext string) string {
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json", ".json5":
		return "json5"
	}
	return ""
}

func readSpecDocument(path, ext string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "policy file", ID: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}

	doc := map[string]any{}
	format := formatFor(ext)
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json5.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.WrapParse(format, path, err)
	}
	return doc, nil
}

// decodeSpec turns a generic document into a Spec by way of YAML, which
// reads both what the YAML and the JSON5 decoders produce.
func decodeSpec(path string, doc map[string]any) (*Spec, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &spec, nil
}
