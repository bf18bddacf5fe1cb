package messages

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and registers one catalog per `<locale>.json`,
// `<locale>.yaml`, `<locale>.yml` or `<locale>.toml` file. Every catalog is
// layered over the English defaults so a partial translation still resolves
// every key. A nil fsys yields a bundle holding only the defaults.
func LoadFS(fsys fs.FS, options ...BundleOption) (*Bundle, error) {
	bundle := NewBundle(options...)
	if fsys == nil {
		return bundle, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("messages: read %s: %w", name, err)
		}

		templates, err := ParseCatalog(name, data)
		if err != nil {
			return err
		}

		catalog := Default()
		catalog.Merge(templates)

		base := path.Base(name)
		locale := strings.TrimSuffix(base, path.Ext(base))
		if err := bundle.Add(locale, catalog); err != nil {
			return fmt.Errorf("messages: %s: %w", name, err)
		}
		bundle.logger.Debug("messages: catalog loaded", "file", name, "locale", locale, "keys", len(templates))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// ParseCatalog decodes a flat key/template document. The format is chosen by
// the file extension of name. Templates are stripped of markup.
func ParseCatalog(name string, data []byte) (map[string]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("messages: file %s is empty", name)
	}

	raw := make(map[string]string)
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("messages: unsupported catalog format %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("messages: parse %s: %w", name, err)
	}

	out := make(map[string]string, len(raw))
	for key, tmpl := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = sanitizeTemplate(tmpl)
	}
	return out, nil
}

func isCatalogFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
