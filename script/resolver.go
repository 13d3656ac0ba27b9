// Package script compiles tengo position resolvers so YAML-loaded
// definitions can express deferred lookups. A resolver script assigns
// x, y, and z; it is re-run on every Resolve call, which the engine
// issues once per shot.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/cinecam/definition"
)

// Compile loads and compiles a resolver script into a ResolverFunc.
func Compile(path string) (definition.ResolverFunc, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "rand", "times"))
	for _, name := range []string{"x", "y", "z"} {
		if err := s.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("script: %s: add %s: %w", path, name, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}

	return func() (definition.Vec3, error) {
		c := compiled.Clone()
		if err := c.Run(); err != nil {
			return definition.Vec3{}, fmt.Errorf("script: run %s: %w", path, err)
		}
		return definition.Vec3{
			X: c.Get("x").Float(),
			Y: c.Get("y").Float(),
			Z: c.Get("z").Float(),
		}, nil
	}, nil
}

// Bind compiles every resolver node carrying a script path, resolving
// relative paths against dir. Nodes that already have a Resolve func are
// left alone.
func Bind(c *definition.Cinematic, dir string) error {
	bind := func(p *definition.PositionInput) error {
		if p.Kind != definition.KindResolver || p.Resolve != nil {
			return nil
		}
		if p.Script == "" {
			return fmt.Errorf("script: resolver node has no script path")
		}
		path := p.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		fn, err := Compile(path)
		if err != nil {
			return err
		}
		p.Resolve = fn
		return nil
	}

	for _, shot := range c.Shots {
		if shot == nil {
			continue
		}
		if shot.From != nil {
			if err := bind(&shot.From.PositionInput); err != nil {
				return err
			}
		}
		if shot.To != nil {
			if err := bind(&shot.To.PositionInput); err != nil {
				return err
			}
		}
		for i := range shot.Path {
			if err := bind(&shot.Path[i].PositionInput); err != nil {
				return err
			}
		}
		for i := range shot.LookAt {
			if err := bind(&shot.LookAt[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
