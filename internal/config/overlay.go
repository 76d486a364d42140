package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type ExcludesFile struct {
	Filters struct {
		ResumeExclude []string `yaml:"resume_exclude"`
	} `yaml:"filters"`
}

// OverlayExcludes lets a standalone excludes file replace the resume-fit
// exclusion list without touching the main config.
func OverlayExcludes(cfg *Config, excludesPath string) error {
	b, err := os.ReadFile(excludesPath)
	if err != nil {
		// Missing excludes file should not kill startup
		return nil
	}

	var ef ExcludesFile
	if err := yaml.Unmarshal(b, &ef); err != nil {
		return err
	}

	if len(ef.Filters.ResumeExclude) > 0 {
		cfg.Filters.ResumeExclude = ef.Filters.ResumeExclude
	}
	return nil
}
