package ports

import (
	"context"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// DefinitionLoader retrieves the static journey definition from wherever it
// is authored (files, a content store). The definition is loaded once per
// process and treated as immutable afterwards.
type DefinitionLoader interface {
	Load(ctx context.Context) (*journey.Definition, error)
}
