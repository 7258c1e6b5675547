package wad

import (
	"encoding/binary"
	"io"
)

// CreateDirectory adds a new namespace directory under path's parent,
// silently doing nothing if any precondition in spec.md §4.6 fails: path
// must be rooted, its basename must fit in 8 bytes alongside "_START"/
// "_END" (so at most 2 characters), it must not already exist, and its
// parent must exist and not be a map marker.
//
// On success it inserts a NAME_START/NAME_END descriptor pair immediately
// before the parent's _END (or at the tail of the descriptor list if the
// parent is root) and mirrors the change into the in-memory tree.
func (w *Wad) CreateDirectory(path string) bool {
	w.lock()
	defer w.unlock()

	if path == "" || path[0] != '/' {
		w.lastErr = ErrInvalidPath
		return false
	}

	tokens := tokenizePath(path)
	if len(tokens) == 0 {
		w.lastErr = ErrInvalidPath
		return false
	}
	basename := tokens[len(tokens)-1]
	if len(basename) > 2 {
		w.lastErr = ErrInvalidPath
		return false
	}
	if w.isDirectoryLocked(path) {
		w.lastErr = ErrExists
		return false
	}

	parentPath, parentLocalName := parentOf(tokens)
	parentNode, ok := w.pathIndex[parentPath]
	if !ok {
		w.lastErr = ErrParentMissing
		return false
	}
	if !parentNode.isDir() {
		w.lastErr = ErrNotDirectory
		return false
	}
	if parentNode.isMapMarker {
		w.lastErr = ErrParentIsMapMarker
		return false
	}

	startName := basename + "_START"
	endName := basename + "_END"
	records := [][]byte{
		encodeDescriptor(0, 0, startName),
		encodeDescriptor(0, 0, endName),
	}

	if !w.insertDescriptors(parentPath, parentLocalName, records) {
		return false
	}

	newPath := canonicalDir(path)
	newDir := newDirNode(newPath)
	parentNode.addChild(newDir)
	w.pathIndex[newPath] = newDir

	w.lastErr = nil
	return true
}

// CreateFile adds a new, empty lump under path's parent, silently doing
// nothing if any precondition in spec.md §4.7 fails: path must be rooted,
// its basename must fit in 8 bytes, it must not look like a map marker or
// a namespace bracket, it must not already exist as content, and its
// parent must exist and not be a map marker.
func (w *Wad) CreateFile(path string) bool {
	w.lock()
	defer w.unlock()

	if path == "" || path[0] != '/' {
		w.lastErr = ErrInvalidPath
		return false
	}

	tokens := tokenizePath(path)
	if len(tokens) == 0 {
		w.lastErr = ErrInvalidPath
		return false
	}
	basename := tokens[len(tokens)-1]
	if len(basename) > 8 {
		w.lastErr = ErrInvalidPath
		return false
	}
	if mapMarkerRegexp.MatchString(basename) || hasStartSuffix(basename) || hasEndSuffix(basename) {
		w.lastErr = ErrReservedName
		return false
	}
	if w.isContentLocked(path) {
		w.lastErr = ErrExists
		return false
	}

	parentPath, parentLocalName := parentOf(tokens)
	parentNode, ok := w.pathIndex[parentPath]
	if !ok {
		w.lastErr = ErrParentMissing
		return false
	}
	if !parentNode.isDir() {
		w.lastErr = ErrNotDirectory
		return false
	}
	if parentNode.isMapMarker {
		w.lastErr = ErrParentIsMapMarker
		return false
	}

	records := [][]byte{encodeDescriptor(0, 0, basename)}
	if !w.insertDescriptors(parentPath, parentLocalName, records) {
		return false
	}

	newFile := newFileNode(path, 0, 0)
	parentNode.addChild(newFile)
	w.pathIndex[path] = newFile

	w.lastErr = nil
	return true
}

// WriteToFile populates path's lump with buf[0:n], ignoring offset: the
// engine only supports initial population of an empty lump (spec.md §4.8).
// It returns -1 if path isn't content, 0 if the lump has already been
// written (write-once semantics), or n on success.
func (w *Wad) WriteToFile(path string, buf []byte, n int, offset int) int {
	w.lock()
	defer w.unlock()

	if !w.isContentLocked(path) {
		w.lastErr = ErrNotContent
		return -1
	}
	node := w.pathIndex[path]
	if node.length != 0 {
		w.lastErr = ErrWriteOnce
		return 0
	}
	if n > len(buf) {
		n = len(buf)
	}

	oldDescOffset := w.descriptorOffset
	if err := shiftForward(w.file, int64(oldDescOffset), int64(n)); err != nil {
		logIOError("writeToFile: shift: %s", err)
		return -1
	}

	newLumpStart := oldDescOffset
	w.descriptorOffset = oldDescOffset + uint32(n)
	if err := w.rewriteDescriptorOffset(); err != nil {
		logIOError("writeToFile: %s", err)
		return -1
	}

	node.offset = newLumpStart
	node.length = uint32(n)

	if _, err := w.file.WriteAt(buf[:n], int64(newLumpStart)); err != nil {
		logIOError("writeToFile: %s", err)
		return -1
	}

	idx, err := w.findDescriptorIndex(path)
	if err != nil {
		logIOError("writeToFile: locating descriptor for %s: %s", path, err)
		return -1
	}

	recordPos := int64(w.descriptorOffset) + int64(idx)*descriptorSize
	meta := make([]byte, 8)
	binary.LittleEndian.PutUint32(meta[0:4], node.offset)
	binary.LittleEndian.PutUint32(meta[4:8], node.length)
	if _, err := w.file.WriteAt(meta, recordPos); err != nil {
		logIOError("writeToFile: %s", err)
		return -1
	}

	w.lastErr = nil
	return n
}

// parentOf returns the canonical parent directory path and the parent's
// local (unqualified) name for a tokenized path. For a top-level path the
// parent is root and the local name is empty.
func parentOf(tokens []string) (parentPath, parentLocalName string) {
	parentTokens := tokens[:len(tokens)-1]
	parentPath = "/"
	for _, t := range parentTokens {
		parentPath += t + "/"
	}
	if len(parentTokens) > 0 {
		parentLocalName = parentTokens[len(parentTokens)-1]
	}
	return parentPath, parentLocalName
}

// insertDescriptors writes records (each descriptorSize bytes) into the
// on-disk descriptor list, either at the tail of the list (parent is root)
// or immediately before the parent's _END record, and updates the header's
// numDescriptors count. It does not touch the in-memory tree.
func (w *Wad) insertDescriptors(parentPath, parentLocalName string, records [][]byte) bool {
	var pos int64

	if parentPath == "/" {
		end, err := w.file.Seek(0, io.SeekEnd)
		if err != nil {
			logIOError("insertDescriptors: %s", err)
			return false
		}
		pos = end
	} else {
		found, ok, err := w.locateParentEnd(parentPath, parentLocalName+"_END")
		if err != nil {
			logIOError("insertDescriptors: %s", err)
			return false
		}
		if !ok {
			return false
		}
		pos = found

		total := int64(len(records)) * descriptorSize
		if err := shiftForward(w.file, pos, total); err != nil {
			logIOError("insertDescriptors: shift: %s", err)
			return false
		}
	}

	for _, rec := range records {
		if _, err := w.file.WriteAt(rec, pos); err != nil {
			logIOError("insertDescriptors: %s", err)
			return false
		}
		pos += descriptorSize
	}

	w.numDescriptors += uint32(len(records))
	if err := w.rewriteNumDescriptors(); err != nil {
		logIOError("insertDescriptors: %s", err)
		return false
	}

	return true
}

// locateParentEnd reparses the on-disk descriptor list to find the byte
// offset of the _END record matching parentEndName at the exact nesting
// depth of parentPath (spec.md §4.6's "second-pass scan"). Same-named
// namespaces at different depths are disambiguated by comparing the full
// reconstructed path, not just the local name (spec.md §9 Open Question 2).
func (w *Wad) locateParentEnd(parentPath, parentEndName string) (int64, bool, error) {
	pos := int64(w.descriptorOffset)
	var open []string

	for {
		rec := make([]byte, descriptorSize)
		if _, err := w.file.ReadAt(rec, pos); err != nil {
			return 0, false, nil
		}
		d := decodeDescriptor(rec)

		switch {
		case hasStartSuffix(d.name):
			open = append(open, d.name[:len(d.name)-len("_START")])
		case d.name == parentEndName:
			current := "/"
			for _, o := range open {
				current += o + "/"
			}
			if current == parentPath {
				return pos, true, nil
			}
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		case hasEndSuffix(d.name):
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}

		pos += descriptorSize
	}
}

// findDescriptorIndex reparses the on-disk descriptor list (using the
// engine's current numDescriptors/descriptorOffset) and returns the
// 0-based position of the record whose reconstructed full path equals
// path, counting every record -- including map marker children -- in
// descriptor order.
func (w *Wad) findDescriptorIndex(path string) (int, error) {
	pos := int64(w.descriptorOffset)
	var open []string
	index := 0

	for i := uint32(0); i < w.numDescriptors; i++ {
		rec := make([]byte, descriptorSize)
		if _, err := w.file.ReadAt(rec, pos); err != nil {
			return -1, err
		}
		pos += descriptorSize
		d := decodeDescriptor(rec)

		current := "/"
		for _, o := range open {
			current += o + "/"
		}

		switch {
		case hasStartSuffix(d.name):
			open = append(open, d.name[:len(d.name)-len("_START")])
			index++
		case hasEndSuffix(d.name):
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
			index++
		case mapMarkerRegexp.MatchString(d.name):
			inner := current + d.name + "/"
			index++
			for j := 0; j < mapMarkerChildren; j++ {
				i++
				childRec := make([]byte, descriptorSize)
				if _, err := w.file.ReadAt(childRec, pos); err != nil {
					return -1, err
				}
				pos += descriptorSize
				child := decodeDescriptor(childRec)
				if inner+child.name == path {
					return index, nil
				}
				index++
			}
		default:
			if current+d.name == path {
				return index, nil
			}
			index++
		}
	}

	return -1, ErrNotContent
}

func (w *Wad) rewriteNumDescriptors() error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, w.numDescriptors)
	_, err := w.file.WriteAt(buf, 4)
	return err
}

func (w *Wad) rewriteDescriptorOffset() error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, w.descriptorOffset)
	_, err := w.file.WriteAt(buf, 8)
	return err
}
