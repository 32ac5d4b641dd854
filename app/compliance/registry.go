package compliance

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed codes.yaml
var canonicalCodesYAML []byte

// registrySourceURL documents where the canonical list is maintained.
const registrySourceURL = "https://www.cms.gov/medicare/coding-billing/healthcare-common-procedure-system"

// CanonicalCode is one entry of the embedded procedure-code registry.
type CanonicalCode struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	MinDuration int    `yaml:"min_duration"`
	MaxDuration int    `yaml:"max_duration"`
}

type canonicalCodeFile struct {
	Codes []CanonicalCode `yaml:"codes"`
}

// LoadCanonicalCodes decodes the embedded canonical code list.
func LoadCanonicalCodes() ([]CanonicalCode, error) {
	var file canonicalCodeFile
	if err := yaml.Unmarshal(canonicalCodesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse canonical code list: %w", err)
	}

	if len(file.Codes) == 0 {
		return nil, fmt.Errorf("canonical code list is empty")
	}

	for _, c := range file.Codes {
		if c.Code == "" || c.Description == "" {
			return nil, fmt.Errorf("canonical code entry missing code or description: %+v", c)
		}
	}

	return file.Codes, nil
}
