package adapters

import (
	"github.com/de-tools/area-atlas/pkg/models/api"
	"github.com/de-tools/area-atlas/pkg/services/config"
)

// MapApiReportConfig applies the request fields over the default run config.
func MapApiReportConfig(c api.ReportConfig) config.RunConfig {
	cfg := config.DefaultRunConfig()
	if c.FileName != "" {
		cfg.FileName = c.FileName
	}
	if c.IncludeAreas != nil {
		cfg.IncludeAreas = *c.IncludeAreas
	}
	if c.IncludeRooms != nil {
		cfg.IncludeRooms = *c.IncludeRooms
	}

	for _, f := range []struct {
		src *string
		dst *string
	}{
		{c.NUA, &cfg.NUA},
		{c.NIA, &cfg.NIA},
		{c.NLA, &cfg.NLA},
		{c.GIA, &cfg.GIA},
		{c.GEA, &cfg.GEA},
		{c.GLA, &cfg.GLA},
		{c.GBA, &cfg.GBA},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return cfg
}
