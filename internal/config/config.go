package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vango-dev/fileroutes/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "fileroutes.json"

	// DefaultViews is the default views directory.
	DefaultViews = "app/views"

	// DefaultOutput is the default path of the generated route document.
	DefaultOutput = "app/generated/routes.json"

	// DefaultIndent is the default JSON indentation of the route document.
	DefaultIndent = "  "

	// DefaultPort is the default development server port.
	DefaultPort = 3100

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultDebounce is the default delay between a file change and a rebuild.
	DefaultDebounce = "150ms"

	// DefaultPublishKey is the default object key of the published document.
	DefaultPublishKey = "routes.json"

	// DefaultRegion is the default S3 region.
	DefaultRegion = "us-east-1"
)

// Environment variables that override the file configuration.
const (
	EnvOutput = "FILEROUTES_OUTPUT"
	EnvViews  = "FILEROUTES_VIEWS"
	EnvBucket = "FILEROUTES_PUBLISH_BUCKET"
)

// Config represents the complete fileroutes.json configuration.
type Config struct {
	// Paths contains the input locations.
	Paths PathsConfig `json:"paths"`

	// Output is the path of the generated route document.
	Output string `json:"output,omitempty" validate:"required"`

	// Indent is the JSON indentation. Use Compact for a single-line document.
	Indent string `json:"indent,omitempty" validate:"max=8"`

	// Compact writes the document without indentation.
	Compact bool `json:"compact,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev"`

	// Publish contains upload configuration.
	Publish PublishConfig `json:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains path configuration for project inputs.
type PathsConfig struct {
	// Views is the directory scanned for views and layouts.
	Views string `json:"views,omitempty" validate:"required"`

	// Manifest is an optional metadata manifest (JSON or YAML) used instead
	// of scanning Views.
	Manifest string `json:"manifest,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" validate:"required"`

	// Debounce is the delay between the last file change and a rebuild (e.g. "150ms").
	Debounce string `json:"debounce,omitempty" validate:"required"`
}

// PublishConfig contains the S3-compatible upload target.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty"`

	// Key is the object key of the document.
	Key string `json:"key,omitempty" validate:"required"`

	// Region is the bucket region.
	Region string `json:"region,omitempty" validate:"required"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" validate:"omitempty,url"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Paths: PathsConfig{
			Views: DefaultViews,
		},
		Output: DefaultOutput,
		Indent: DefaultIndent,
		Dev: DevConfig{
			Port:     DefaultPort,
			Host:     DefaultHost,
			Debounce: DefaultDebounce,
		},
		Publish: PublishConfig{
			Key:    DefaultPublishKey,
			Region: DefaultRegion,
		},
	}
}

// Load reads configuration from the specified directory.
// A directory without fileroutes.json yields the defaults rooted at dir.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := New()
		cfg.configPath = configPath
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No configuration file at " + path).
				WithSuggestion("Check the --config flag or run without it to use the defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Paths.Views == "" {
		c.Paths.Views = DefaultViews
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Indent == "" && !c.Compact {
		c.Indent = DefaultIndent
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Debounce == "" {
		c.Dev.Debounce = DefaultDebounce
	}
	if c.Publish.Key == "" {
		c.Publish.Key = DefaultPublishKey
	}
	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
}

// ApplyEnv overrides fields from FILEROUTES_* environment variables.
func (c *Config) ApplyEnv() {
	c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvViews); ok && v != "" {
		c.Paths.Views = v
	}
	if v, ok := lookup(EnvBucket); ok && v != "" {
		c.Publish.Bucket = v
	}
}

// validate is shared; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return errors.New("E123").Wrap(err)
		}
		var lists []string
		for _, fe := range fieldErrs {
			field := jsonPath(fe.Namespace())
			if field == "dev.port" {
				return errors.New("E122").
					WithDetail(fmt.Sprintf("Port must be between 0 and 65535, got %v", fe.Value()))
			}
			lists = append(lists, field+" ("+fe.Tag()+")")
		}
		return errors.New("E123").
			WithDetail("validation failed on " + strings.Join(lists, ", "))
	}

	if _, err := time.ParseDuration(c.Dev.Debounce); err != nil {
		return errors.New("E123").
			WithDetail("dev.debounce: " + err.Error()).
			WithSuggestion(`Use a Go duration such as "150ms"`)
	}
	return nil
}

// jsonPath strips the root struct name from a validator namespace,
// e.g. "Config.dev.port" → "dev.port".
func jsonPath(namespace string) string {
	_, rest, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}
	return rest
}

// DebounceDuration returns the parsed dev debounce delay.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Dev.Debounce)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(DefaultDebounce)
	}
	return d
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// ViewsPath returns the absolute path to the views directory.
func (c *Config) ViewsPath() string {
	return c.resolve(c.Paths.Views)
}

// ManifestPath returns the absolute path to the metadata manifest, or "" if
// none is configured.
func (c *Config) ManifestPath() string {
	if c.Paths.Manifest == "" {
		return ""
	}
	return c.resolve(c.Paths.Manifest)
}

// OutputPath returns the absolute path to the generated route document.
func (c *Config) OutputPath() string {
	return c.resolve(c.Output)
}

// DocumentIndent returns the indentation used when writing the document.
func (c *Config) DocumentIndent() string {
	if c.Compact {
		return ""
	}
	return c.Indent
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing fileroutes.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest fileroutes.json at
// or above the working directory, falling back to defaults rooted at the
// working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return Load(wd)
	}

	return Load(root)
}
