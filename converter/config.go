package converter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnsConfig holds extra header aliases per logical field. Each value may
// be a single header name or a list:
//
//	columns:
//	  phone: "Tél. portable"
//	  mail:
//	    - Courriel
//	    - Adresse mail
type ColumnsConfig struct {
	Aliases map[Field][]string
}

func (c *ColumnsConfig) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("columns: expected a mapping, got %s", nodeKind(value))
	}
	aliases := make(map[Field][]string, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		v := value.Content[i+1]
		field, ok := ParseField(strings.TrimSpace(k.Value))
		if !ok {
			return fmt.Errorf("columns: line %d: unknown field %q", k.Line, k.Value)
		}
		switch v.Kind {
		case yaml.ScalarNode:
			if name := strings.TrimSpace(v.Value); name != "" {
				aliases[field] = append(aliases[field], name)
			}
		case yaml.SequenceNode:
			var names []string
			if err := v.Decode(&names); err != nil {
				return err
			}
			for _, name := range names {
				if name = strings.TrimSpace(name); name != "" {
					aliases[field] = append(aliases[field], name)
				}
			}
		default:
			return fmt.Errorf("columns: line %d: %s must be a string or a list", v.Line, k.Value)
		}
	}
	c.Aliases = aliases
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

type FileConfig struct {
	// Encoding of the export. Empty means detect.
	Encoding string `yaml:"encoding"`
	Output   string `yaml:"output"`

	// DB is the SQLite ledger path. Empty disables the ledger.
	DB    string `yaml:"db"`
	Debug bool   `yaml:"debug"`

	LabelColor string        `yaml:"label_color"`
	IDBase     int           `yaml:"id_base"`
	Columns    ColumnsConfig `yaml:"columns"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
