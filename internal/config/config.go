package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SourceToggle struct {
	Enabled bool `yaml:"enabled"`
}

type JobmailConfig struct {
	Enabled    bool     `yaml:"enabled"`
	IMAPHost   string   `yaml:"imap_host"`
	IMAPPort   int      `yaml:"imap_port"`
	Username   string   `yaml:"username"`
	Mailbox    string   `yaml:"mailbox"`
	SubjectAny []string `yaml:"subject_any"`
	SinceDays  int      `yaml:"since_days"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		SourceTimeoutSeconds int     `yaml:"source_timeout_seconds"`
		DefaultMaxResults    int     `yaml:"default_max_results"`
		HostRequestsPerSec   float64 `yaml:"host_requests_per_sec"`
		HostBurst            int     `yaml:"host_burst"`
	} `yaml:"search"`

	Sources struct {
		RemoteOK  SourceToggle  `yaml:"remoteok"`
		Arbeitnow SourceToggle  `yaml:"arbeitnow"`
		Remotive  SourceToggle  `yaml:"remotive"`
		Indeed    SourceToggle  `yaml:"indeed"`
		Glassdoor SourceToggle  `yaml:"glassdoor"`
		Jobmail   JobmailConfig `yaml:"jobmail"`
	} `yaml:"sources"`

	Outreach struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		From     string `yaml:"from"`

		LLM struct {
			BaseURL string `yaml:"base_url"`
			Model   string `yaml:"model"`
		} `yaml:"llm"`
	} `yaml:"outreach"`
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
