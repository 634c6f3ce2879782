// Package manifest reads and rewrites the JSON metadata documents that carry
// the module version (package.json and module.json). Only the top-level
// "version" field is touched; every other key keeps its value and position.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const versionKey = "version"

var prettyOptions = &pretty.Options{Width: -1, Prefix: "", Indent: "  ", SortKeys: false}

// Document is one metadata file held in memory.
type Document struct {
	Path string
	raw  []byte
}

// Load reads path and checks that it is a JSON object with a string version.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("parse %s: invalid JSON", path)
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("parse %s: top-level value is not an object", path)
	}
	v := gjson.GetBytes(raw, versionKey)
	if v.Type != gjson.String {
		return nil, fmt.Errorf("parse %s: missing string %q field", path, versionKey)
	}
	return &Document{Path: path, raw: raw}, nil
}

// Version returns the current version string.
func (d *Document) Version() string {
	return gjson.GetBytes(d.raw, versionKey).String()
}

// SetVersion updates the in-memory document.
func (d *Document) SetVersion(v string) error {
	out, err := sjson.SetBytes(d.raw, versionKey, v)
	if err != nil {
		return fmt.Errorf("set version in %s: %w", d.Path, err)
	}
	d.raw = out
	return nil
}

// Bytes renders the document with a two-space indent.
func (d *Document) Bytes() []byte {
	return pretty.PrettyOptions(d.raw, prettyOptions)
}

// Save overwrites the file on disk.
func (d *Document) Save() error {
	if err := os.WriteFile(d.Path, d.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.Path, err)
	}
	return nil
}

// Set is the pair of documents that must always agree on the version.
type Set struct {
	Package *Document
	Module  *Document
}

// LoadSet reads both documents before anything is written.
func LoadSet(packagePath, modulePath string) (*Set, error) {
	pkg, err := Load(packagePath)
	if err != nil {
		return nil, err
	}
	mod, err := Load(modulePath)
	if err != nil {
		return nil, err
	}
	return &Set{Package: pkg, Module: mod}, nil
}

// Version is the version the package document declares. It is the one the
// next release is computed from.
func (s *Set) Version() string {
	return s.Package.Version()
}

// WriteVersion stores v in both documents and saves them.
func (s *Set) WriteVersion(v string) error {
	if s == nil || s.Package == nil || s.Module == nil {
		return errors.New("manifest set is not loaded")
	}
	for _, d := range []*Document{s.Package, s.Module} {
		if err := d.SetVersion(v); err != nil {
			return err
		}
		if err := d.Save(); err != nil {
			return err
		}
	}
	return nil
}
