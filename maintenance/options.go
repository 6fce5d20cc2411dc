package maintenance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/pagekit/template"
)

// Built-in template names.
const (
	TemplateSimple       = "simple"
	TemplateCountdown    = "countdown"
	TemplateConstruction = "construction"
)

// Options configures the maintenance page and the middleware guarding a site.
type Options struct {
	// Enabled turns maintenance mode on.
	// Default: true
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled" jsonschema:"default=true"`

	// Template is a built-in template name, literal template content, or a
	// site path ("/we_work_on") to redirect visitors to.
	// Default: "simple"
	Template string `json:"template,omitempty" yaml:"template,omitempty" toml:"template,omitempty" jsonschema:"description=Built-in name or template content or redirect path"`

	// TemplateFile is read into Template when loading options from a file.
	// Relative paths are resolved against the options file's directory.
	TemplateFile string `json:"template_file,omitempty" yaml:"template_file,omitempty" toml:"template_file,omitempty"`

	Logo         string `json:"logo,omitempty" yaml:"logo,omitempty" toml:"logo,omitempty"`
	Title        string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	EmailAddress string `json:"email_address,omitempty" yaml:"email_address,omitempty" toml:"email_address,omitempty" jsonschema:"format=email"`
	EmailText    string `json:"email_text,omitempty" yaml:"email_text,omitempty" toml:"email_text,omitempty"`
	Copyright    string `json:"copyright,omitempty" yaml:"copyright,omitempty" toml:"copyright,omitempty"`

	// Countdown is the RFC 3339 time maintenance ends. Once it passes, the
	// middleware lets every request through.
	Countdown string `json:"countdown,omitempty" yaml:"countdown,omitempty" toml:"countdown,omitempty" jsonschema:"format=date-time"`

	// AllowedPaths are path prefixes served normally during maintenance, in
	// addition to /assets, /favicon and /logo.
	AllowedPaths []string `json:"allowed_paths,omitempty" yaml:"allowed_paths,omitempty" toml:"allowed_paths,omitempty"`

	// Override is the query parameter that grants a bypass cookie.
	// Default: "bypass"
	Override string `json:"override,omitempty" yaml:"override,omitempty" toml:"override,omitempty"`

	// CookieName names the bypass cookie.
	// Default: "astro_maintenance_override"
	CookieName string `json:"cookie_name,omitempty" yaml:"cookie_name,omitempty" toml:"cookie_name,omitempty"`

	// CookieMaxAge is the bypass cookie lifetime in seconds.
	// Default: 604800 (7 days)
	CookieMaxAge int `json:"cookie_max_age,omitempty" yaml:"cookie_max_age,omitempty" toml:"cookie_max_age,omitempty" jsonschema:"minimum=0"`

	// Socials maps a network name to a profile URL.
	Socials map[string]string `json:"socials,omitempty" yaml:"socials,omitempty" toml:"socials,omitempty"`
}

// DefaultOptions returns Options with the stock page text and cookie settings.
func DefaultOptions() Options {
	return Options{
		Enabled:      true,
		Template:     TemplateSimple,
		Title:        "We're sorry! The Site is under maintenance right now.",
		Description:  "Our website is currently down for scheduled maintenance. We'll return shortly. We appreciate your patience.",
		EmailText:    "Contact us for further information.",
		Copyright:    "Copyright © 2025",
		Override:     "bypass",
		CookieName:   "astro_maintenance_override",
		CookieMaxAge: 7 * 24 * 60 * 60,
	}
}

// Validate checks if the options are usable by the middleware.
func (o *Options) Validate() error {
	if o.CookieName == "" {
		return fmt.Errorf("%w: cookie_name is required", ErrInvalidOptions)
	}
	if o.CookieMaxAge < 0 {
		return fmt.Errorf("%w: cookie_max_age must be >= 0, got %d", ErrInvalidOptions, o.CookieMaxAge)
	}
	if o.Countdown != "" {
		if _, ok := parseCountdown(o.Countdown); !ok {
			return fmt.Errorf("%w: countdown %q is not a valid date", ErrInvalidOptions, o.Countdown)
		}
	}
	return nil
}

// Data returns the context maintenance templates are rendered against.
func (o *Options) Data() template.Context {
	socials := make(map[string]any, len(o.Socials))
	for name, url := range o.Socials {
		socials[name] = url
	}
	return template.Context{
		"title":        o.Title,
		"description":  o.Description,
		"logo":         o.Logo,
		"copyright":    o.Copyright,
		"emailAddress": o.EmailAddress,
		"emailText":    o.EmailText,
		"countdown":    o.Countdown,
		"socials":      socials,
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvEnabled      = "MAINTENANCE_ENABLED"
	EnvTemplate     = "MAINTENANCE_TEMPLATE"
	EnvTitle        = "MAINTENANCE_TITLE"
	EnvDescription  = "MAINTENANCE_DESCRIPTION"
	EnvEmailAddress = "MAINTENANCE_EMAIL_ADDRESS"
	EnvEmailText    = "MAINTENANCE_EMAIL_TEXT"
	EnvCopyright    = "MAINTENANCE_COPYRIGHT"
	EnvOverride     = "MAINTENANCE_OVERRIDE"
	EnvLogo         = "MAINTENANCE_LOGO"
	EnvCountdown    = "MAINTENANCE_COUNTDOWN"
	EnvCookieMaxAge = "MAINTENANCE_COOKIE_MAX_AGE"
)

// ApplyEnv overrides options from environment variables. Non-empty string
// variables replace the configured value; MAINTENANCE_ENABLED enables only
// when set to "true". lookup is normally os.LookupEnv.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEnabled); ok {
		o.Enabled = v == "true"
	}

	strs := []struct {
		key string
		dst *string
	}{
		{EnvTemplate, &o.Template},
		{EnvTitle, &o.Title},
		{EnvDescription, &o.Description},
		{EnvEmailAddress, &o.EmailAddress},
		{EnvEmailText, &o.EmailText},
		{EnvCopyright, &o.Copyright},
		{EnvOverride, &o.Override},
		{EnvLogo, &o.Logo},
		{EnvCountdown, &o.Countdown},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvCookieMaxAge); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidOptions, EnvCookieMaxAge, err)
		}
		o.CookieMaxAge = n
	}
	return nil
}

// LoadOptions reads options from a YAML, TOML or JSON file. Fields absent
// from the file keep their DefaultOptions values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &opts)
	case ".toml":
		err = toml.Unmarshal(data, &opts)
	case ".json":
		err = json.Unmarshal(data, &opts)
	default:
		return opts, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return opts, fmt.Errorf("parse options %s: %w", path, err)
	}

	if opts.TemplateFile != "" {
		tmplPath := opts.templatePath(path)
		content, err := os.ReadFile(tmplPath)
		if err != nil {
			return opts, fmt.Errorf("read template file: %w", err)
		}
		opts.Template = string(content)
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// templatePath resolves TemplateFile relative to the options file at base.
func (o *Options) templatePath(base string) string {
	if o.TemplateFile == "" || filepath.IsAbs(o.TemplateFile) {
		return o.TemplateFile
	}
	return filepath.Join(filepath.Dir(base), o.TemplateFile)
}

// Schema returns the JSON schema describing an options file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&Options{})
	s.Title = "Maintenance options"
	return s
}

// countdownLayouts are the accepted Countdown formats, most specific first.
// Date-times without a zone are local time; a bare date is midnight UTC.
var countdownLayouts = []struct {
	layout string
	local  bool
}{
	{layout: time.RFC3339Nano},
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05", local: true},
	{layout: "2006-01-02T15:04", local: true},
	{layout: "2006-01-02"},
}

func parseCountdown(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, l := range countdownLayouts {
		loc := time.UTC
		if l.local {
			loc = time.Local
		}
		if t, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
