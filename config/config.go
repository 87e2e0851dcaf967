// Package config holds the options of a numexpr run and turns them
// into the inputs of the search and the result filter.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"zappem.net/pub/math/numexpr/expr"
	"zappem.net/pub/math/numexpr/frac"
	"zappem.net/pub/math/numexpr/search"
	"zappem.net/pub/math/numexpr/tally"
)

// DefaultMaxInputs bounds the number of inputs. The memo grows
// exponentially with it.
const DefaultMaxInputs = 10

// Config is the full set of options. Numbers and Value hold literals
// as typed by the user ("3", "-1/2"); they are parsed on use.
type Config struct {
	Numbers []string `yaml:"numbers"`
	// Ops lists the operator symbols to use, e.g. "+*". Empty means
	// all four.
	Ops string `yaml:"ops"`

	NoAssociative bool `yaml:"no_associative"`
	NoCommutative bool `yaml:"no_commutative"`
	Normalize     bool `yaml:"normalize"`

	ExprOnly bool `yaml:"expr_only"`
	FreqOnly bool `yaml:"freq_only"`

	IntOnly  bool `yaml:"int_only"`
	IntSteps bool `yaml:"int_steps"`
	PosOnly  bool `yaml:"pos_only"`
	PosSteps bool `yaml:"pos_steps"`

	Value     string `yaml:"value"`
	DivByZero bool   `yaml:"divbyzero"`
	Frequency *int   `yaml:"frequency"`

	MaxInputs int `yaml:"max_inputs"`
}

// ErrInvalid is wrapped by every validation failure that is not a
// malformed number.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the configuration used when nothing is given.
func Default() Config {
	return Config{
		Numbers:   []string{"1", "3", "4", "6"},
		MaxInputs: DefaultMaxInputs,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads YAML over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, nil
}

// Encode writes c as YAML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	e := yaml.NewEncoder(&buf)
	e.SetIndent(2)
	if err := e.Encode(c); err != nil {
		return err
	}
	if err := e.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate checks every option and the combinations between them.
func (c Config) Validate() error {
	if _, err := c.Inputs(); err != nil {
		return err
	}
	if _, err := c.OpList(); err != nil {
		return err
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	if c.Frequency != nil && *c.Frequency < 0 {
		return fmt.Errorf("frequency %d is negative: %w", *c.Frequency, ErrInvalid)
	}
	if c.Value != "" && c.DivByZero {
		return fmt.Errorf("value and divbyzero are exclusive: %w", ErrInvalid)
	}
	if !c.ShowExprs() && !c.ShowFreqs() {
		return fmt.Errorf("options leave nothing to print: %w", ErrInvalid)
	}
	return nil
}

// Inputs parses the numbers. Each must be finite.
func (c Config) Inputs() ([]frac.Frac, error) {
	if len(c.Numbers) == 0 {
		return nil, fmt.Errorf("no numbers: %w", ErrInvalid)
	}
	limit := c.MaxInputs
	if limit <= 0 || limit > search.MaxInputs {
		limit = search.MaxInputs
	}
	if len(c.Numbers) > limit {
		return nil, fmt.Errorf("%d numbers, at most %d: %w", len(c.Numbers), limit, ErrInvalid)
	}
	fs := make([]frac.Frac, 0, len(c.Numbers))
	for _, s := range c.Numbers {
		f, err := frac.Parse(s)
		if err != nil {
			return nil, err
		}
		if f.IsUndefined() {
			return nil, fmt.Errorf("number %q is undefined: %w", s, ErrInvalid)
		}
		fs = append(fs, f)
	}
	return fs, nil
}

// OpList parses Ops. An empty Ops gives all four operators.
func (c Config) OpList() ([]expr.Op, error) {
	if c.Ops == "" {
		return expr.Ops(), nil
	}
	var ops []expr.Op
	seen := make(map[expr.Op]bool)
	for _, r := range c.Ops {
		op, err := expr.ParseOp(string(r))
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
		}
		if seen[op] {
			return nil, fmt.Errorf("operator %q repeated: %w", op, ErrInvalid)
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, nil
}

// Rules returns the associativity and commutativity switches.
func (c Config) Rules() expr.Rules {
	return expr.Rules{
		NoAssociative: c.NoAssociative,
		NoCommutative: c.NoCommutative,
	}
}

// Strategy returns Full when Normalize is set.
func (c Config) Strategy() expr.Strategy {
	if c.Normalize {
		return expr.Full
	}
	return expr.Shallow
}

// Filter builds the result filter.
func (c Config) Filter() (tally.Filter, error) {
	f := tally.Filter{
		Frequency: c.Frequency,
		IntOnly:   c.IntOnly,
		IntSteps:  c.IntSteps,
		PosOnly:   c.PosOnly,
		PosSteps:  c.PosSteps,
	}
	switch {
	case c.DivByZero:
		u := frac.Undefined()
		f.Value = &u
	case c.Value != "":
		v, err := frac.Parse(c.Value)
		if err != nil {
			return tally.Filter{}, err
		}
		f.Value = &v
	}
	return f, nil
}

// ShowExprs reports whether expressions are printed. Asking for a
// frequency, even 0, prints only frequencies.
func (c Config) ShowExprs() bool {
	return !c.FreqOnly && c.Frequency == nil
}

// ShowFreqs reports whether the frequency table is printed. Asking for
// a value prints only expressions.
func (c Config) ShowFreqs() bool {
	return !c.ExprOnly && c.Value == "" && !c.DivByZero
}
