package vocab

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadOverrides merges keyword expansions from a YAML file into the table.
// The file maps keys to keyword lists; existing entries are replaced, new
// keys are added. Call before serving lookups, the table is not locked.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "vocab: read overrides %s", path)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return eris.Wrapf(err, "vocab: parse overrides %s", path)
	}

	for key, kw := range overrides {
		if len(kw) == 0 {
			return eris.Errorf("vocab: override %s has no keywords", key)
		}
		keywords[key] = kw
	}
	return nil
}
