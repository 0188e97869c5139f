package output

import (
	"encoding/json"

	"github.com/rpgo/fire-calculator/internal/domain"
)

// JSONFormatter serializes the retirement result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(result *domain.RetirementResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
