// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command greeter is a small demo of the resolution pipeline: global and
// command options, environment binding through an optional .env file, and
// interactive prompting for whatever is still missing.
//
// Try:
//
//	greeter greet --name Ada
//	GREETER_NAME=Ada greeter greet --shout
//	greeter greet            # prompts for name
//	greeter --help
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cliv-dev/cliv/pkg/cliv"
	"github.com/cliv-dev/cliv/pkg/dotenv"
)

func main() {
	fileEnv, err := dotenv.Load(".env")
	if err != nil {
		log.Fatalf("reading .env: %v", err)
	}

	cfg := cliv.Config{
		Name:        "greeter",
		Description: "Greets people in configurable ways",
		Options: map[string]cliv.Option{
			"verbose": {
				Type:        cliv.TypeBoolean,
				Short:       "v",
				Description: "Chatty output",
			},
			"lang": {
				Type:        cliv.TypeString,
				Short:       "l",
				Description: "Greeting language",
				Env:         "GREETER_LANG",
				Default:     "en",
				Choices:     []any{"en", "fr", "de"},
			},
		},
		Commands: map[string]cliv.Command{
			"greet": {
				Description: "Print a greeting",
				Options: map[string]cliv.Option{
					"name": {
						Type:        cliv.TypeString,
						Short:       "n",
						Description: "Who to greet",
						Env:         "GREETER_NAME",
						Required:    true,
					},
					"shout": {
						Type:        cliv.TypeBoolean,
						Short:       "s",
						Description: "Uppercase the greeting",
						Negatable:   true,
					},
					"repeat": {
						Type:        cliv.TypeNumber,
						Short:       "r",
						Description: "How many times",
						Default:     1,
						Validate: func(v any) error {
							if n := v.(float64); n < 1 || n != float64(int(n)) {
								return fmt.Errorf("must be a positive whole number")
							}
							return nil
						},
					},
				},
			},
		},
		DefaultCommand: "greet",
	}

	// A .env file overlays the process environment.
	env := dotenv.Merge(dotenv.Environ(), fileEnv)
	res, err := cliv.ParseArgs(context.Background(), cfg, os.Args[1:], env)
	if err != nil {
		// ParseArgs already printed the message and help and exited;
		// unreachable unless ThrowOnError is set.
		return
	}

	greeting := map[string]string{
		"en": "Hello",
		"fr": "Bonjour",
		"de": "Hallo",
	}[res.Options["lang"].(string)]

	line := fmt.Sprintf("%s, %s!", greeting, res.Options["name"])
	if on, _ := res.Options["shout"].(bool); on {
		line = strings.ToUpper(line)
	}
	if on, _ := res.Options["verbose"].(bool); on {
		fmt.Printf("command=%s default=%v lang=%s\n", res.Command, res.IsDefaultCommand, res.Options["lang"])
	}
	for i := 0; i < int(res.Options["repeat"].(float64)); i++ {
		fmt.Println(line)
	}
}
