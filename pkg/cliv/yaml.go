// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliv

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlOption mirrors Option for declarative schema files. Validate has no
// YAML form; attach custom validators in code after loading.
type yamlOption struct {
	Type        string `yaml:"type"`
	Short       string `yaml:"short"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	Default     any    `yaml:"default"`
	Env         string `yaml:"env"`
	Choices     []any  `yaml:"choices"`
	Negatable   bool   `yaml:"negatable"`
	Hidden      bool   `yaml:"hidden"`
}

type yamlCommand struct {
	Description string                `yaml:"description"`
	Options     map[string]yamlOption `yaml:"options"`
}

type yamlConfig struct {
	Name             string                 `yaml:"name"`
	Description      string                 `yaml:"description"`
	Options          map[string]yamlOption  `yaml:"options"`
	Commands         map[string]yamlCommand `yaml:"commands"`
	DefaultCommand   string                 `yaml:"default-command"`
	AllowPositionals bool                   `yaml:"allow-positionals"`
	DisableHelp      bool                   `yaml:"disable-help"`
	DisablePrompts   bool                   `yaml:"disable-prompts"`
}

// FromYAML builds a Config from a declarative YAML schema, so a program
// can ship its CLI surface as data. The result still goes through the
// usual validation on Parse; behavioral knobs not expressible as data
// (prompt collaborator, sinks, terminator) are set on the returned Config
// afterwards.
func FromYAML(data []byte) (Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, &ConfigError{Msg: fmt.Sprintf("cannot decode schema: %v", err)}
	}

	cfg := Config{
		Name:             raw.Name,
		Description:      raw.Description,
		DefaultCommand:   raw.DefaultCommand,
		AllowPositionals: raw.AllowPositionals,
		DisableHelp:      raw.DisableHelp,
		DisablePrompts:   raw.DisablePrompts,
	}

	var err error
	if cfg.Options, err = optionsFromYAML(raw.Options); err != nil {
		return Config{}, err
	}
	if len(raw.Commands) > 0 {
		cfg.Commands = make(map[string]Command, len(raw.Commands))
		for name, cmd := range raw.Commands {
			opts, err := optionsFromYAML(cmd.Options)
			if err != nil {
				return Config{}, err
			}
			cfg.Commands[name] = Command{Description: cmd.Description, Options: opts}
		}
	}
	return cfg, nil
}

func optionsFromYAML(src map[string]yamlOption) (map[string]Option, error) {
	if len(src) == 0 {
		return nil, nil
	}
	dst := make(map[string]Option, len(src))
	for name, o := range src {
		t := OptionType(o.Type)
		switch t {
		case TypeString, TypeNumber, TypeBoolean:
		default:
			return nil, &ConfigError{Msg: fmt.Sprintf("option %q declares unknown type %q", name, o.Type)}
		}
		opt := Option{
			Type:        t,
			Short:       o.Short,
			Description: o.Description,
			Required:    o.Required,
			Env:         o.Env,
			Negatable:   o.Negatable,
			Hidden:      o.Hidden,
		}
		if o.Default != nil {
			opt.Default = normalizeValue(t, o.Default)
		}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, normalizeValue(t, c))
		}
		dst[name] = opt
	}
	return dst, nil
}
