package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/area-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

// RunConfig holds the inputs of one report run.
type RunConfig struct {
	FileName     string `mapstructure:"file_name" ini:"file_name" json:"file_name"`
	IncludeAreas bool   `mapstructure:"include_areas" ini:"include_areas" json:"include_areas"`
	IncludeRooms bool   `mapstructure:"include_rooms" ini:"include_rooms" json:"include_rooms"`

	// Comma-separated element names per KPI group.
	NUA string `mapstructure:"nua_list" ini:"nua_list" json:"nua_list"`
	NIA string `mapstructure:"nia_list" ini:"nia_list" json:"nia_list"`
	NLA string `mapstructure:"nla_list" ini:"nla_list" json:"nla_list"`
	GIA string `mapstructure:"gia_list" ini:"gia_list" json:"gia_list"`
	GEA string `mapstructure:"gea_list" ini:"gea_list" json:"gea_list"`
	GLA string `mapstructure:"gla_list" ini:"gla_list" json:"gla_list"`
	GBA string `mapstructure:"gba_list" ini:"gba_list" json:"gba_list"`
}

// DefaultRunConfig mirrors the defaults of the automation inputs.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		FileName:     "schedule",
		IncludeAreas: true,
		IncludeRooms: false,
	}
}

func (c RunConfig) Selection() domain.Selection {
	return domain.Selection{
		IncludeRooms: c.IncludeRooms,
		IncludeAreas: c.IncludeAreas,
	}
}

// Groups parses the seven group lists.
func (c RunConfig) Groups() domain.Groups {
	return domain.NewGroups(map[string][]string{
		domain.GroupNUA: SplitList(c.NUA),
		domain.GroupNIA: SplitList(c.NIA),
		domain.GroupNLA: SplitList(c.NLA),
		domain.GroupGIA: SplitList(c.GIA),
		domain.GroupGEA: SplitList(c.GEA),
		domain.GroupGLA: SplitList(c.GLA),
		domain.GroupGBA: SplitList(c.GBA),
	})
}

func (c RunConfig) Validate() error {
	if strings.TrimSpace(c.FileName) == "" {
		return fmt.Errorf("file_name is required")
	}
	if strings.ContainsAny(c.FileName, `/\`) {
		return fmt.Errorf("file_name %q must not contain path separators", c.FileName)
	}
	return nil
}

// SplitList splits a comma-separated list and trims every entry. Blank entries are
// dropped, so an empty string yields an empty group.
func SplitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// LoadRunConfig reads a run config file (yaml, json or toml, by extension).
func LoadRunConfig(path string) (*RunConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := DefaultRunConfig()
	v.SetDefault("file_name", defaults.FileName)
	v.SetDefault("include_areas", defaults.IncludeAreas)
	v.SetDefault("include_rooms", defaults.IncludeRooms)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg RunConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}
	return &cfg, nil
}
