// Package template holds the static catalog of analysis shortcuts.
package template

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"tabnote/internal/analysis"
)

//go:embed catalog.toml
var catalogTOML string

var ErrTemplateNotFound = errors.New("template not found")

// Template is a read-only named analysis shortcut.
type Template struct {
	ID          string `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Kind        string `toml:"kind" json:"kind"`
}

type catalogFile struct {
	Templates []Template `toml:"templates"`
}

var (
	loadOnce sync.Once
	loaded   []Template
	loadErr  error
)

func load() ([]Template, error) {
	loadOnce.Do(func() {
		var f catalogFile
		if _, err := toml.Decode(catalogTOML, &f); err != nil {
			loadErr = fmt.Errorf("decode template catalog: %w", err)
			return
		}
		for _, t := range f.Templates {
			if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Kind) == "" {
				loadErr = fmt.Errorf("template catalog: entry %q missing id or kind", t.Title)
				return
			}
			if _, known := analysis.ParseKind(t.Kind); !known {
				loadErr = fmt.Errorf("template catalog: %q declares unknown kind %q", t.ID, t.Kind)
				return
			}
		}
		loaded = f.Templates
	})
	return loaded, loadErr
}

// Catalog returns every template in declaration order.
func Catalog() []Template {
	ts, err := load()
	if err != nil {
		// The catalog is embedded; a decode failure is a build defect.
		panic(err)
	}
	out := make([]Template, len(ts))
	copy(out, ts)
	return out
}

// Lookup finds a template by id.
func Lookup(id string) (Template, error) {
	for _, t := range Catalog() {
		if t.ID == strings.TrimSpace(id) {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%q: %w", id, ErrTemplateNotFound)
}
