// Package config loads run settings from an optional YAML file. Flags set on
// the command line override whatever the file says.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/swemeshy/counts-to-csv/internal/h5ad"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Delimiter    string `yaml:"delimiter" validate:"oneof=comma tab colon pipe semicolon"`
	ColumnOrient string `yaml:"column_orient" validate:"oneof=var-names obs-names"`
	Outfile      string `yaml:"outfile" validate:"required"`
	IndexLabel   string `yaml:"index_label"`
	Compression  string `yaml:"compression" validate:"oneof=auto none gzip zstd"`
	Layout       Layout `yaml:"layout"`
	Log          Log    `yaml:"log"`

	// varSet records that the YAML named layout.var itself.
	varSet bool
}

// Layout names the matrix group and the dataframes labelling it.
type Layout struct {
	Matrix string `yaml:"matrix" validate:"h5path"`
	Obs    string `yaml:"obs" validate:"h5path"`
	Var    string `yaml:"var" validate:"h5path"`
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

func Default() Config {
	l := h5ad.DefaultLayout()
	return Config{
		Delimiter:    "comma",
		ColumnOrient: "var-names",
		Outfile:      "out.csv",
		Compression:  "auto",
		Layout:       Layout{Matrix: l.Matrix, Obs: l.Obs, Var: l.Var},
		Log:          Log{Level: "info"},
	}
}

// H5 converts the layout for the reader.
func (l Layout) H5() h5ad.Layout {
	return h5ad.Layout{Matrix: h5ad.Clean(l.Matrix), Obs: h5ad.Clean(l.Obs), Var: h5ad.Clean(l.Var)}
}

// SetMatrix points the layout at another matrix group. A raw/ matrix takes
// its var names from raw/var unless var was set explicitly, by the caller or
// by the config file.
func (c *Config) SetMatrix(matrix string, varExplicit bool) {
	c.Layout.Matrix = matrix
	if !varExplicit && !c.varSet && c.Layout.Var == h5ad.DefaultLayout().Var {
		c.Layout.Var = h5ad.ForMatrix(matrix).Var
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML over the defaults. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var seen struct {
		Layout struct {
			Var *string `yaml:"var"`
		} `yaml:"layout"`
	}
	if err := yaml.Unmarshal(b, &seen); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg.varSet = seen.Layout.Var != nil
	cfg.SetMatrix(cfg.Layout.Matrix, false)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	_ = validate.RegisterValidation("h5path", validH5Path)
}

// validH5Path rejects paths that name the file root.
func validH5Path(fl validator.FieldLevel) bool {
	return h5ad.Clean(fl.Field().String()) != ""
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", field, fe.Value(), fe.Param())
	case "required":
		return fmt.Sprintf("%s: must be set", field)
	case "h5path":
		return fmt.Sprintf("%s: %q does not name a group", field, fe.Value())
	}
	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}
