// Package file loads a journey definition from a YAML document on disk.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// Loader implements ports.DefinitionLoader from a single YAML file.
type Loader struct {
	path string
}

// New creates a loader for the given definition file.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the definition. The returned definition is owned by
// the caller and must be treated as immutable from then on.
func (l *Loader) Load(ctx context.Context) (*journey.Definition, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", l.path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition %s: %w", l.path, err)
	}
	return def, nil
}

// stringList accepts either a single scalar or a sequence in YAML, so
// authors can write `next: review` as well as `next: [review, appeal]`.
type stringList []string

func (s *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = []string{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = many
		return nil
	default:
		return fmt.Errorf("expected string or list, got yaml kind %d", value.Kind)
	}
}

// Wire types: the authoring format keeps requirements as a loose map so the
// admin tooling can attach fields freely; mapstructure narrows it into the
// typed domain struct.

type fileDoc struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Phases []filePhase `yaml:"phases"`
}

type filePhase struct {
	ID        string     `yaml:"id"`
	Title     string     `yaml:"title"`
	Ordinal   int        `yaml:"ordinal"`
	Condition string     `yaml:"condition"`
	Nodes     []fileNode `yaml:"nodes"`
}

type fileNode struct {
	ID             string         `yaml:"id"`
	Title          string         `yaml:"title"`
	Type           string         `yaml:"type"`
	Description    string         `yaml:"description"`
	Requirements   map[string]any `yaml:"requirements"`
	Next           stringList     `yaml:"next"`
	Outcomes       []fileOutcome  `yaml:"outcomes"`
	EndsPhase      bool           `yaml:"ends_phase"`
	WhoCanComplete []string       `yaml:"who_can_complete"`
}

type fileOutcome struct {
	ID    string     `yaml:"id"`
	Label string     `yaml:"label"`
	When  string     `yaml:"when"`
	Next  stringList `yaml:"next"`
}

// Parse decodes a YAML definition document.
func Parse(data []byte) (*journey.Definition, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("definition is missing an id")
	}

	def := &journey.Definition{
		ID:     doc.ID,
		Title:  doc.Title,
		Phases: make([]journey.Phase, 0, len(doc.Phases)),
	}

	for pi, fp := range doc.Phases {
		phase := journey.Phase{
			ID:        fp.ID,
			Title:     fp.Title,
			Ordinal:   fp.Ordinal,
			Condition: fp.Condition,
			Nodes:     make([]journey.Node, 0, len(fp.Nodes)),
		}
		// Authors may omit ordinals; fall back to declaration order.
		if phase.Ordinal == 0 {
			phase.Ordinal = pi + 1
		}

		for _, fn := range fp.Nodes {
			node, err := convertNode(fn)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", fn.ID, err)
			}
			phase.Nodes = append(phase.Nodes, node)
		}

		def.Phases = append(def.Phases, phase)
	}

	return def, nil
}

func convertNode(fn fileNode) (journey.Node, error) {
	node := journey.Node{
		ID:             fn.ID,
		Title:          fn.Title,
		Type:           fn.Type,
		Description:    fn.Description,
		Next:           fn.Next,
		EndsPhase:      fn.EndsPhase,
		WhoCanComplete: fn.WhoCanComplete,
	}
	if node.ID == "" {
		return node, fmt.Errorf("missing id")
	}

	for _, fo := range fn.Outcomes {
		node.Outcomes = append(node.Outcomes, journey.Outcome{
			ID:    fo.ID,
			Label: fo.Label,
			When:  fo.When,
			Next:  fo.Next,
		})
	}

	if len(fn.Requirements) > 0 {
		reqs := &journey.Requirements{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           reqs,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return node, fmt.Errorf("requirements decoder: %w", err)
		}
		if err := decoder.Decode(fn.Requirements); err != nil {
			return node, fmt.Errorf("invalid requirements: %w", err)
		}
		node.Requirements = reqs
	}

	return node, nil
}
