package config

import (
	"errors"
	"fmt"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if len(cfg.Locations.Primary) == 0 {
		errs = append(errs, "locations.primary must have at least 1 city")
	}
	for i, loc := range cfg.Locations.Primary {
		if strings.TrimSpace(loc) == "" {
			errs = append(errs, fmt.Sprintf("locations.primary[%d] cannot be empty", i))
		}
	}

	for i, term := range cfg.Filters.ResumeExclude {
		if strings.TrimSpace(term) == "" {
			errs = append(errs, fmt.Sprintf("filters.resume_exclude[%d] cannot be empty", i))
		}
	}

	checkRate := func(name string, s Source) {
		if s.Enabled && s.RatePerSec < 0 {
			errs = append(errs, fmt.Sprintf("sources.%s.rate_per_sec must be >= 0", name))
		}
	}
	checkRate("adzuna", cfg.Sources.Adzuna)
	checkRate("seek", cfg.Sources.Seek)
	checkRate("prosple", cfg.Sources.Prosple)
	checkRate("gradconnection", cfg.Sources.GradConnection)
	checkRate("linkedin", cfg.Sources.LinkedIn)
	checkRate("company_careers", cfg.Sources.CompanyCareers)

	if cfg.Email.Enabled {
		if strings.TrimSpace(cfg.Email.SMTPHost) == "" {
			errs = append(errs, "email.smtp_host is required when email.enabled=true")
		}
		if cfg.Email.SMTPPort == 0 {
			errs = append(errs, "email.smtp_port is required when email.enabled=true")
		}
		if strings.TrimSpace(cfg.Email.From) == "" {
			errs = append(errs, "email.from is required when email.enabled=true")
		}
	}

	if cfg.Sources.EmailAlerts.Enabled {
		if strings.TrimSpace(cfg.IMAP.Host) == "" {
			errs = append(errs, "imap.host is required when sources.email_alerts.enabled=true")
		}
		if strings.TrimSpace(cfg.IMAP.Username) == "" {
			errs = append(errs, "imap.username is required when sources.email_alerts.enabled=true")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
