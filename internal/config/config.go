package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mqmods/pkg/mqmods"
)

// ErrConfigNotFound is returned when the parameter file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("parameter file not found")

// Environment variables read after godotenv has loaded any .env file.
const (
	EnvInput            = mqmods.EnvPrefix + "INPUT"
	EnvUpdate           = mqmods.EnvPrefix + "UPDATE"
	EnvDedupFirstSearch = mqmods.EnvPrefix + "DEDUP_FIRST_SEARCH"
)

// Options holds the settings a parameter file or the environment may supply.
// Nil booleans and empty strings mean "not set" so layers can be merged.
type Options struct {
	InputFilePath    string `yaml:"input_file_path,omitempty"`
	UpdateParameters *bool  `yaml:"update_parameters,omitempty"`
	DedupFirstSearch *bool  `yaml:"dedup_first_search,omitempty"`
	Verbose          *bool  `yaml:"verbose,omitempty"`
	LogFile          string `yaml:"log_file,omitempty"`
}

// Load reads a YAML parameter file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("invalid parameter file %s: %w", path, err)
	}
	return &opts, nil
}

// FromEnv builds Options from environment variables using lookup,
// typically os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Options, error) {
	var opts Options

	if v, ok := lookup(EnvInput); ok {
		opts.InputFilePath = strings.TrimSpace(v)
	}

	var err error
	if opts.UpdateParameters, err = envBool(lookup, EnvUpdate); err != nil {
		return Options{}, err
	}
	if opts.DedupFirstSearch, err = envBool(lookup, EnvDedupFirstSearch); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func envBool(lookup func(string) (string, bool), key string) (*bool, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil, fmt.Errorf("%s=%q is not a boolean: %w", key, v, mqmods.ErrInvalidConfig)
	}
	return &b, nil
}

// Overlay returns o with every field set in over replacing its value.
func (o Options) Overlay(over Options) Options {
	if over.InputFilePath != "" {
		o.InputFilePath = over.InputFilePath
	}
	if over.UpdateParameters != nil {
		o.UpdateParameters = over.UpdateParameters
	}
	if over.DedupFirstSearch != nil {
		o.DedupFirstSearch = over.DedupFirstSearch
	}
	if over.Verbose != nil {
		o.Verbose = over.Verbose
	}
	if over.LogFile != "" {
		o.LogFile = over.LogFile
	}
	return o
}

// RunConfig converts the options to a run configuration.
func (o Options) RunConfig() mqmods.RunConfig {
	mode := mqmods.ModeExtract
	if isSet(o.UpdateParameters) {
		mode = mqmods.ModeUpdate
	}
	return mqmods.RunConfig{
		InputPath:        o.InputFilePath,
		Mode:             mode,
		DedupFirstSearch: isSet(o.DedupFirstSearch),
		Verbose:          isSet(o.Verbose),
	}
}

// Bool returns a pointer to b for building Options literals.
func Bool(b bool) *bool {
	return &b
}

func isSet(b *bool) bool {
	return b != nil && *b
}

// templateEntry documents one key of the parameter file template.
type templateEntry struct {
	key     string
	comment string
	value   string
	tag     string
}

// WriteTemplate writes a commented YAML parameter file holding opts.
// Unset fields are written with their defaults.
func WriteTemplate(w io.Writer, opts Options) error {
	entries := []templateEntry{
		{"input_file_path", "MaxQuant parameter file to examine; wildcards are supported in the file name", opts.InputFilePath, "!!str"},
		{"update_parameters", "Apply the migration recipe instead of listing modifications", strconv.FormatBool(isSet(opts.UpdateParameters)), "!!bool"},
		{"dedup_first_search", "Skip first-search variable modifications already listed as variable modifications", strconv.FormatBool(isSet(opts.DedupFirstSearch)), "!!bool"},
		{"verbose", "Show detailed progress messages", strconv.FormatBool(isSet(opts.Verbose)), "!!bool"},
		{"log_file", "Also write a structured JSON log to this file", opts.LogFile, "!!str"},
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.key, HeadComment: e.comment},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: e.tag, Value: e.value},
		)
	}
	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "mqmods parameter file",
		Content:     []*yaml.Node{root},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write parameter file template: %w", err)
	}
	return enc.Close()
}
