package wad

// IsContent reports whether path names an existing lump (a file, not a
// directory), per spec.md §4.4: empty paths, paths not starting with "/",
// and paths ending with "/" are rejected outright before the pathIndex
// lookup.
func (w *Wad) IsContent(path string) bool {
	w.lock()
	defer w.unlock()
	return w.isContentLocked(path)
}

func (w *Wad) isContentLocked(path string) bool {
	if path == "" || path[0] != '/' || path[len(path)-1] == '/' {
		return false
	}
	n, ok := w.pathIndex[path]
	if !ok {
		return false
	}
	return !n.isDir()
}

// IsDirectory reports whether path names an existing directory, appending a
// trailing "/" to the lookup key first if the caller didn't supply one.
func (w *Wad) IsDirectory(path string) bool {
	w.lock()
	defer w.unlock()
	return w.isDirectoryLocked(path)
}

func (w *Wad) isDirectoryLocked(path string) bool {
	if path == "" || path[0] != '/' {
		return false
	}
	_, ok := w.pathIndex[canonicalDir(path)]
	return ok
}

// GetSize returns the lump's length in bytes, or -1 if path isn't content.
func (w *Wad) GetSize(path string) int {
	w.lock()
	defer w.unlock()
	if !w.isContentLocked(path) {
		return -1
	}
	return int(w.pathIndex[path].length)
}

// GetContents reads up to n bytes of path's lump data starting at offset
// into buf, returning the number of bytes read. It returns -1 if path isn't
// content, and 0 if offset is at or past the end of the lump.
func (w *Wad) GetContents(path string, buf []byte, n int, offset int) int {
	w.lock()
	defer w.unlock()

	if !w.isContentLocked(path) {
		return -1
	}
	node := w.pathIndex[path]
	length := int(node.length)

	if offset >= length {
		return 0
	}

	readLen := n
	if remaining := length - offset; readLen > remaining {
		readLen = remaining
	}
	if readLen > len(buf) {
		readLen = len(buf)
	}

	got, err := w.file.ReadAt(buf[:readLen], int64(node.offset)+int64(offset))
	if err != nil && got == 0 {
		logIOError("failed to read %s: %s", path, err)
		return -1
	}
	return got
}

// GetDirectory appends the last path segment of each child of path, in
// descriptor order, to *out. It returns the number of entries appended, or
// -1 if path isn't a directory.
func (w *Wad) GetDirectory(path string, out *[]string) int {
	w.lock()
	defer w.unlock()

	dirPath := canonicalDir(path)
	node, ok := w.pathIndex[dirPath]
	if !ok || !node.isDir() {
		return -1
	}

	count := 0
	for _, child := range node.children {
		tokens := tokenizePath(child.name)
		if len(tokens) == 0 {
			continue
		}
		*out = append(*out, tokens[len(tokens)-1])
		count++
	}
	return count
}
