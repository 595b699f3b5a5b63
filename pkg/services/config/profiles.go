package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Registry serves named run profiles from an ini file, one section per profile.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*RunConfig, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*RunConfig, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	cfg := DefaultRunConfig()
	if err := section.MapTo(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", profile, err)
	}
	return &cfg, nil
}
