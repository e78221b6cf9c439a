// manifest/manifest.go
package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Config is the top-level manifest: model mounts plus the dispatch rules
// bound to them.
type Config struct {
	Models    []Model    `toml:"model"`
	Resources []Resource `toml:"resource"`
}

// Model mounts one resolver-backed model type at a URL path. The binding a
// name refers to is registered in code (core.RegisterModel).
type Model struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Resource declares one dispatch rule: a named handler plus the predicate
// constraints it answers under.
type Resource struct {
	Model   string `toml:"model"`
	Handler string `toml:"handler"`
	View    string `toml:"view"`   // route-name predicate; "" is the default view
	Method  string `toml:"method"` // request-method predicate
}

func (m *Model) normalize() error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return errors.New("name is required")
	}
	if m.Path == "" {
		return errors.New("path is required")
	}
	if !strings.HasPrefix(m.Path, "/") {
		m.Path = "/" + m.Path
	}
	if m.Path != "/" {
		m.Path = path.Clean(m.Path)
	}
	return nil
}

func (r *Resource) normalize() error {
	r.Model = strings.TrimSpace(r.Model)
	if r.Model == "" {
		return errors.New("model is required")
	}
	r.Handler = strings.TrimSpace(r.Handler)
	if r.Handler == "" {
		return errors.New("handler is required")
	}
	r.View = strings.TrimSpace(r.View)
	r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
	if r.Method == "" {
		r.Method = "GET"
	}
	return nil
}

// Validate normalizes in place and cross-checks resources against models.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return errors.New("no models defined")
	}
	names := map[string]struct{}{}
	paths := map[string]struct{}{}
	for i := range c.Models {
		if err := c.Models[i].normalize(); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		m := c.Models[i]
		if _, dup := names[m.Name]; dup {
			return fmt.Errorf("model %d: duplicate name %q", i, m.Name)
		}
		names[m.Name] = struct{}{}
		if _, dup := paths[m.Path]; dup {
			return fmt.Errorf("model %d: duplicate path %q", i, m.Path)
		}
		paths[m.Path] = struct{}{}
	}
	if len(c.Resources) == 0 {
		return errors.New("no resources defined")
	}
	for i := range c.Resources {
		if err := c.Resources[i].normalize(); err != nil {
			return fmt.Errorf("resource %d: %w", i, err)
		}
		rs := c.Resources[i]
		if _, ok := names[rs.Model]; !ok {
			return fmt.Errorf("resource %d (%s %s): model %q not defined", i, rs.Method, rs.Handler, rs.Model)
		}
	}
	return nil
}
