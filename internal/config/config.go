// Package config loads and validates the runway configuration file.
package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/ospworks/runway/internal/intake"
)

// Config represents the application configuration.
type Config struct {
	Intake    IntakeConfig     `yaml:"intake"`
	Mail      MailConfig       `yaml:"mail"`
	Questions intake.Questions `yaml:"questions"`
	Calendar  CalendarConfig   `yaml:"calendar"`
	Checklist ChecklistConfig  `yaml:"checklist"`
	Output    OutputConfig     `yaml:"output"`
	Ledger    LedgerConfig     `yaml:"ledger"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Intake.Validate(); err != nil {
		return err
	}
	if err := c.Mail.Validate(); err != nil {
		return err
	}
	if err := validateQuestions(c.Questions); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Ledger.Validate()
}

func validateQuestions(q intake.Questions) error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Email, validation.Required),
		validation.Field(&q.Sponsor, validation.Required),
		validation.Field(&q.CoInvestigators, validation.Required),
		validation.Field(&q.OfficialDeadline, validation.Required),
		validation.Field(&q.LeadOrgDeadline, validation.Required),
		validation.Field(&q.ExpectedSubmission, validation.Required),
	)
}

// IntakeConfig holds the path to the proposal intake table.
type IntakeConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the intake configuration.
func (c *IntakeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// MailConfig holds the mail thread source configuration.
//
// Sender identifies the form mailbox whose messages carry the intake
// questionnaire; Marker is the subject fragment that distinguishes intake
// threads from other mail in the same folder.
type MailConfig struct {
	Path   string `yaml:"path"`
	Sender string `yaml:"sender"`
	Marker string `yaml:"marker"`
}

// Validate validates the mail configuration.
func (c *MailConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Sender, validation.Required),
		validation.Field(&c.Marker, validation.Required),
	)
}

// CalendarConfig holds the holiday calendar configuration.
type CalendarConfig struct {
	EventsPath   string `yaml:"events_path"`
	HolidaysPath string `yaml:"holidays_path"`
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HolidaysPath, validation.Required),
	)
}

// ChecklistConfig holds the tier template override. When Template is empty
// the built-in task lists and offsets are used.
type ChecklistConfig struct {
	Template string `yaml:"template"`
}

// OutputConfig holds the checklist document sink configuration.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// LedgerConfig holds the processing ledger database configuration.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the ledger configuration.
func (c *LedgerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		Intake: IntakeConfig{
			Path: "./intake.csv",
		},
		Mail: MailConfig{
			Path:   "./mail",
			Sender: "forms@osp.example.edu",
			Marker: "Proposal Intake",
		},
		Questions: intake.Questions{
			Email:              "What is your email address",
			Sponsor:            "Who is the sponsor",
			CoInvestigators:    "List any co-investigators",
			OfficialDeadline:   "Official deadline",
			LeadOrgDeadline:    "Lead organization deadline",
			ExpectedSubmission: "Expected submission date",
		},
		Calendar: CalendarConfig{
			EventsPath:   "./calendar.json",
			HolidaysPath: "./holidays.csv",
		},
		Output: OutputConfig{
			Dir: "./checklists",
		},
		Ledger: LedgerConfig{
			Path: "./runway.db",
		},
	}
}

// Load reads the configuration file at path, applying defaults for any
// section the file omits. Returns a validated configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
