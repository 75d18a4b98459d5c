package pack

import (
	"sort"
	"sync"
)

// MergeMultiple reads every source in parallel, stable-sorts them by
// (role, disk path), then applies each in order so a later source
// overrides an earlier one on a path collision.
// The result inherits the first (lowest-sorting) source's role; the
// caller is expected to reset it to a non-mod role afterward, since the
// merged Pack is not meant to be treated as an editable source itself.
func MergeMultiple(sources map[string][]byte, opts ...ReadOption) (*Pack, error) {
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}

	packs := make([]*Pack, len(paths))
	errsOut := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			readOpts := append(append([]ReadOption(nil), opts...), WithDiskFilePath(path))
			p, err := Open(sources[path], readOpts...)
			packs[i] = p
			errsOut[i] = err
		}(i, path)
	}
	wg.Wait()

	for _, err := range errsOut {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(packs, func(i, j int) bool {
		if packs[i].role != packs[j].role {
			return packs[i].role < packs[j].role
		}
		return packs[i].diskFilePath < packs[j].diskFilePath
	})

	merged := New(packs[0].generation)
	merged.role = packs[0].role

	sourceNames := make(map[string]bool, len(packs))
	for _, p := range packs {
		sourceNames[p.diskFilePath] = true
	}

	var depUnion []string
	for _, p := range packs {
		for _, key := range p.order {
			merged.putRecord(p.files[key])
		}
		for _, dep := range p.dependencies {
			if sourceNames[dep] {
				continue
			}
			depUnion = append(depUnion, dep)
		}
	}
	merged.dependencies = sortedUnique(depUnion)

	return merged, nil
}
