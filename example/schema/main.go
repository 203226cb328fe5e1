// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command schema loads its whole CLI surface from an embedded YAML file
// and attaches the pieces YAML cannot express in code.
package main

import (
	"context"
	"fmt"
	"log"

	_ "embed"

	"github.com/cliv-dev/cliv/pkg/cliv"
)

//go:embed schema.yaml
var schema []byte

func main() {
	cfg, err := cliv.FromYAML(schema)
	if err != nil {
		log.Fatalf("loading schema: %v", err)
	}
	cfg.Commands["deploy"].Options["replicas"] = withValidator(
		cfg.Commands["deploy"].Options["replicas"],
		func(v any) error {
			if v.(float64) > 50 {
				return fmt.Errorf("more than 50 replicas needs a change ticket")
			}
			return nil
		},
	)

	res, err := cliv.Parse(context.Background(), cfg)
	if err != nil {
		return
	}
	fmt.Printf("deploying %v replicas to %v\n", res.Options["replicas"], res.Options["region"])
}

func withValidator(opt cliv.Option, fn func(any) error) cliv.Option {
	opt.Validate = fn
	return opt
}
