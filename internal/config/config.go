package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one connector's toggle + politeness budget.
type Source struct {
	Enabled    bool    `yaml:"enabled"`
	RatePerSec float64 `yaml:"rate_per_sec"`
}

type Config struct {
	App struct {
		DataDir   string `yaml:"data_dir"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"app"`

	Locations struct {
		Primary       []string `yaml:"primary"`
		IncludeRemote bool     `yaml:"include_remote"`
	} `yaml:"locations"`

	Filters struct {
		// ResumeExclude replaces the built-in out-of-stack exclusion list
		// when non-empty.
		ResumeExclude []string `yaml:"resume_exclude"`
	} `yaml:"filters"`

	Sources struct {
		Adzuna         Source `yaml:"adzuna"`
		Seek           Source `yaml:"seek"`
		Prosple        Source `yaml:"prosple"`
		GradConnection Source `yaml:"gradconnection"`
		LinkedIn       Source `yaml:"linkedin"`
		CompanyCareers Source `yaml:"company_careers"`
		EmailAlerts    Source `yaml:"email_alerts"`
	} `yaml:"sources"`

	Email struct {
		Enabled  bool   `yaml:"enabled"`
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		From     string `yaml:"from"`
		To       string `yaml:"to"`
	} `yaml:"email"`

	IMAP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Mailbox  string `yaml:"mailbox"`
	} `yaml:"imap"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
