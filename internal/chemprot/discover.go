// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chemprot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoAbstracts is returned when a partition has no abstracts file.
var ErrNoAbstracts = errors.New("no abstracts file found")

// File name stems of a partition. A file is <prefix><stem><variant>.
const (
	stemAbstracts    = "_abstracts"
	stemEntities     = "_entities"
	stemGoldStandard = "_gold_standard"
	stemRelations    = "_relations"
	suffixXZ         = ".xz"
)

// variants are the accepted endings after a stem, in preference order.
// The test partition carries a "_gs" marker.
var variants = []string{".tsv", "_gs.tsv", ".tsv" + suffixXZ, "_gs.tsv" + suffixXZ}

// Partition lists the source files of one corpus partition, each group in
// lexical order.
type Partition struct {
	Abstracts []string `json:"abstracts" yaml:"abstracts"`
	Entities  []string `json:"entities" yaml:"entities"`
	Relations []string `json:"relations" yaml:"relations"`
}

// Discover locates the partition files for input, which is either a
// partition directory or a single abstracts file. Relations come from the
// gold-standard file when present, otherwise from the relations file.
func Discover(input string) (Partition, error) {
	info, err := os.Stat(input)
	if err != nil {
		return Partition{}, fmt.Errorf("reading input %s: %w", input, err)
	}
	if info.IsDir() {
		return discoverDir(input)
	}
	return discoverFile(input)
}

func discoverDir(dir string) (Partition, error) {
	var p Partition
	var err error

	if p.Abstracts, err = globStem(dir, stemAbstracts); err != nil {
		return Partition{}, err
	}
	if len(p.Abstracts) == 0 {
		return Partition{}, fmt.Errorf("%w in %s", ErrNoAbstracts, dir)
	}
	if p.Entities, err = globStem(dir, stemEntities); err != nil {
		return Partition{}, err
	}
	if p.Relations, err = globStem(dir, stemGoldStandard); err != nil {
		return Partition{}, err
	}
	if len(p.Relations) == 0 {
		if p.Relations, err = globStem(dir, stemRelations); err != nil {
			return Partition{}, err
		}
	}
	return p, nil
}

// globStem returns the files in dir named *<stem><variant>. When one
// prefix has several variants only the first in variants order is kept.
func globStem(dir, stem string) ([]string, error) {
	pattern := "*" + stem + "{" + strings.Join(variants, ",") + "}"
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching %s in %s: %w", pattern, dir, err)
	}

	rank := make(map[string]int)
	chosen := make(map[string]string)
	for _, m := range matches {
		prefix, r := splitVariant(m, stem)
		if best, ok := rank[prefix]; ok && best <= r {
			continue
		}
		rank[prefix], chosen[prefix] = r, m
	}

	paths := make([]string, 0, len(chosen))
	for _, m := range chosen {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

// splitVariant splits name into the prefix before stem and the index of its
// variant. A name with no known variant ranks len(variants).
func splitVariant(name, stem string) (string, int) {
	for i, v := range variants {
		if prefix, ok := strings.CutSuffix(name, stem+v); ok {
			return prefix, i
		}
	}
	return name, len(variants)
}

func discoverFile(path string) (Partition, error) {
	dir, base := filepath.Split(path)
	prefix, r := splitVariant(base, stemAbstracts)
	if r == len(variants) {
		return Partition{}, fmt.Errorf("%w: %s is not an abstracts file", ErrNoAbstracts, path)
	}
	prefix = dir + prefix

	p := Partition{Abstracts: []string{path}}
	p.Entities = sibling(prefix, stemEntities)
	p.Relations = sibling(prefix, stemGoldStandard)
	if len(p.Relations) == 0 {
		p.Relations = sibling(prefix, stemRelations)
	}
	return p, nil
}

// sibling returns the first existing file named prefix+stem+variant.
func sibling(prefix, stem string) []string {
	for _, v := range variants {
		candidate := prefix + stem + v
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return []string{candidate}
		}
	}
	return nil
}
