package pack

import (
	"strings"

	"github.com/twtools/packlib/errs"
)

// Insert adds or replaces rec at its own Path, rejecting an empty or
// reserved destination.
func (p *Pack) Insert(rec *FileRecord) error {
	if rec.path == "" {
		return errs.ErrEmptyDestination
	}
	if IsReserved(rec.path) {
		return errs.ErrReservedPath
	}
	p.putRecord(rec)
	return nil
}

// Remove deletes path, or every file under folder path when it names a
// folder rather than a file ").
func (p *Pack) Remove(path string) error {
	if rec, ok := p.File(path); ok {
		p.deleteRecord(strings.ToLower(rec.path))
		return nil
	}

	prefix := strings.ToLower(strings.TrimSuffix(path, "/")) + "/"
	var toRemove []string
	for _, key := range p.order {
		if strings.HasPrefix(key, prefix) {
			toRemove = append(toRemove, key)
		}
	}
	if len(toRemove) == 0 {
		return errs.ErrPathNotFound
	}
	for _, key := range toRemove {
		p.deleteRecord(key)
	}
	return nil
}

// Move relocates src to dst, supporting both file-to-file and
// folder-to-folder moves. A folder move takes the whole subtree by prefix
// match on src+"/" to avoid false positives against similarly-named
// siblings.
func (p *Pack) Move(src, dst string) error {
	if dst == "" {
		return errs.ErrEmptyDestination
	}
	if IsReserved(dst) {
		return errs.ErrReservedPath
	}

	if rec, ok := p.File(src); ok {
		oldKey := strings.ToLower(rec.path)
		rec.path = dst
		p.deleteRecord(oldKey)
		p.putRecord(rec)
		return nil
	}

	prefix := strings.ToLower(strings.TrimSuffix(src, "/")) + "/"
	dstPrefix := strings.TrimSuffix(dst, "/") + "/"
	var matches []string
	for _, key := range p.order {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, key)
		}
	}
	if len(matches) == 0 {
		return errs.ErrPathNotFound
	}

	for _, key := range matches {
		rec := p.files[key]
		newPath := dstPrefix + rec.path[len(prefix):]
		rec.path = newPath
		p.deleteRecord(key)
		p.putRecord(rec)
	}
	return nil
}

// Rename moves src to a new name within the same parent folder; it is
// move(src, dst) with dst's parent forced to src's.
func (p *Pack) Rename(src, newName string) error {
	parent := ""
	if i := strings.LastIndex(src, "/"); i >= 0 {
		parent = src[:i+1]
	}
	return p.Move(src, parent+newName)
}
