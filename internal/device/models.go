package device

import (
	_ "embed"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/rusenback/devicemgr/internal/model"
)

//go:embed models.toml
var modelsTOML []byte

type modelTable struct {
	Model []model.KnownModel `toml:"model"`
}

// ParseModels decodes a model table in the embedded TOML layout
func ParseModels(data []byte) ([]model.KnownModel, error) {
	var table modelTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing model table: %w", err)
	}
	for i, m := range table.Model {
		if m.ID == "" || m.Name == "" {
			return nil, fmt.Errorf("model table row %d: id and name are required", i+1)
		}
	}
	return table.Model, nil
}

// KnownModels returns the built-in S23 table
func KnownModels() []model.KnownModel {
	models, err := ParseModels(modelsTOML)
	if err != nil {
		// the table is compiled in, a broken one is a build defect
		panic(err)
	}
	return models
}

// LookupModel returns the first known model whose id occurs in reported
func LookupModel(models []model.KnownModel, reported string) (model.KnownModel, bool) {
	if reported == "" {
		return model.KnownModel{}, false
	}
	for _, m := range models {
		if strings.Contains(reported, m.ID) {
			return m, true
		}
	}
	return model.KnownModel{}, false
}
