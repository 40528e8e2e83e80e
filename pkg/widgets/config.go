package widgets

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/elves/ebind/pkg/errutil"
)

// EmptyPolicy decides how many pages a paginator over no items reports.
type EmptyPolicy string

// Possible values for EmptyPolicy.
const (
	ZeroPages EmptyPolicy = "zero-pages"
	OnePage   EmptyPolicy = "one-page"
)

// RearmPolicy decides whether a dismissed alert can be re-armed through an
// intent.
type RearmPolicy string

// Possible values for RearmPolicy.
const (
	// Re-arming requires a write to the bound state from outside the alert.
	RearmExternal RearmPolicy = "external"
	// Arm events are accepted and written through the alert's var.
	RearmIntent RearmPolicy = "intent"
)

// Config configures the widgets.
type Config struct {
	Paginator PaginatorConfig `yaml:"paginator"`
	Alert     AlertConfig     `yaml:"alert"`
}

// PaginatorConfig configures a [Paginator].
type PaginatorConfig struct {
	PageSize int         `yaml:"page-size" validate:"min=1"`
	Empty    EmptyPolicy `yaml:"empty" validate:"oneof=zero-pages one-page"`
}

// AlertConfig configures an [Alert].
type AlertConfig struct {
	Rearm RearmPolicy `yaml:"rearm" validate:"oneof=external intent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Paginator: PaginatorConfig{PageSize: 10, Empty: ZeroPages},
		Alert:     AlertConfig{Rearm: RearmExternal},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks c, returning one error per invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, len(fieldErrs))
	for i, fe := range fieldErrs {
		// Drop the leading "Config.".
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs[i] = fmt.Errorf("%s: %v violates rule %s", field, fe.Value(), rule)
	}
	return errutil.Multi(errs...)
}

// LoadConfig reads a YAML configuration from r. Fields not present keep their
// default values; unknown fields are errors.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	logger.Debugw("config loaded", "config", cfg)
	return cfg, nil
}
