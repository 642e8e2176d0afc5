// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/luxfi/migrate/pkg/constants"
	"github.com/spf13/afero"
)

// Registry resolves contract names to artifacts found in a list of build
// directories. Directories are searched in order; the first match wins.
type Registry struct {
	fs   afero.Fs
	dirs []string

	mu    sync.Mutex
	cache map[string]*Artifact
}

func NewRegistry(fs afero.Fs, dirs ...string) *Registry {
	return &Registry{
		fs:    fs,
		dirs:  dirs,
		cache: map[string]*Artifact{},
	}
}

func (r *Registry) Dirs() []string {
	return r.dirs
}

// Resolve returns the artifact for name. Lookups are cached.
func (r *Registry) Resolve(name string) (*Artifact, error) {
	if name == "" {
		return nil, fmt.Errorf("empty contract name: %w", constants.ErrArtifactNotFound)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if art, ok := r.cache[name]; ok {
		return art, nil
	}
	for _, dir := range r.dirs {
		art, err := r.resolveIn(dir, name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		r.cache[name] = art
		return art, nil
	}
	return nil, fmt.Errorf("%q in %s: %w", name, strings.Join(r.dirs, ", "), constants.ErrArtifactNotFound)
}

func (r *Registry) resolveIn(dir, name string) (*Artifact, error) {
	for _, p := range []string{
		filepath.Join(dir, name+constants.ArtifactJSONSuffix),
		filepath.Join(dir, name+constants.FoundrySolSuffix, name+constants.ArtifactJSONSuffix),
	} {
		data, err := afero.ReadFile(r.fs, p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		art, err := ParseBuildJSON(data, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		art.SourcePath = p
		return art, nil
	}

	binPath := filepath.Join(dir, name+constants.ArtifactBinSuffix)
	bin, err := afero.ReadFile(r.fs, binPath)
	if err != nil {
		return nil, err
	}
	rawABI, err := afero.ReadFile(r.fs, filepath.Join(dir, name+constants.ArtifactABISuffix))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	art, err := ParseBin(name, bin, rawABI)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", binPath, err)
	}
	art.SourcePath = binPath
	return art, nil
}

// List returns the sorted, de-duplicated names of the artifacts present in
// the registry directories. Missing directories are skipped.
func (r *Registry) List() ([]string, error) {
	seen := map[string]struct{}{}
	for _, dir := range r.dirs {
		entries, err := afero.ReadDir(r.fs, dir)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name := e.Name()
			switch {
			case e.IsDir() && strings.HasSuffix(name, constants.FoundrySolSuffix):
				// foundry: only Foo.sol/Foo.json is resolvable by name
				stem := strings.TrimSuffix(name, constants.FoundrySolSuffix)
				exists, err := afero.Exists(r.fs, filepath.Join(dir, name, stem+constants.ArtifactJSONSuffix))
				if err != nil {
					return nil, err
				}
				if exists {
					seen[stem] = struct{}{}
				}
			case e.IsDir():
			case strings.HasSuffix(name, constants.ArtifactJSONSuffix):
				seen[strings.TrimSuffix(name, constants.ArtifactJSONSuffix)] = struct{}{}
			case strings.HasSuffix(name, constants.ArtifactBinSuffix):
				seen[strings.TrimSuffix(name, constants.ArtifactBinSuffix)] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}
