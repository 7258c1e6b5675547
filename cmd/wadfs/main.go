// Command wadfs mounts a WAD archive as a FUSE filesystem: directories for
// namespace brackets and map markers, regular files for lumps.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/chloekaii/wadfs"
)

// node is a FUSE inode backed by a path into a *wad.Wad. Every operation
// queries the engine directly rather than caching state locally, the same
// lazy-lookup discipline wadfs.cpp's do_getattr/do_readdir use against
// libWad.
type node struct {
	fs.Inode
	w    *wad.Wad
	path string // canonical: directories end with "/", root is "/"
}

var (
	_ fs.NodeLookuper  = (*node)(nil)
	_ fs.NodeReaddirer = (*node)(nil)
	_ fs.NodeGetattrer = (*node)(nil)
	_ fs.NodeOpener    = (*node)(nil)
	_ fs.NodeReader    = (*node)(nil)
	_ fs.NodeWriter    = (*node)(nil)
	_ fs.NodeMkdirer   = (*node)(nil)
	_ fs.NodeMknoder   = (*node)(nil)
)

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	dirPath := n.path + name + "/"
	if n.w.IsDirectory(dirPath) {
		out.Attr.Mode = fuse.S_IFDIR | 0755
		child := &node{w: n.w, path: dirPath}
		return n.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFDIR}), 0
	}

	filePath := n.path + name
	if n.w.IsContent(filePath) {
		out.Attr.Mode = fuse.S_IFREG | 0644
		out.Attr.Size = uint64(n.w.GetSize(filePath))
		child := &node{w: n.w, path: filePath}
		return n.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFREG}), 0
	}

	return nil, syscall.ENOENT
}

func (n *node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	var names []string
	if n.w.GetDirectory(n.path, &names) < 0 {
		return nil, syscall.ENOTDIR
	}

	entries := make([]fuse.DirEntry, 0, len(names))
	for _, name := range names {
		mode := uint32(fuse.S_IFREG)
		if n.w.IsDirectory(n.path + name + "/") {
			mode = fuse.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: name, Mode: mode})
	}
	return fs.NewListDirStream(entries), 0
}

func (n *node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	if n.path == "/" || n.w.IsDirectory(n.path) {
		out.Mode = fuse.S_IFDIR | 0755
		return 0
	}
	out.Mode = fuse.S_IFREG | 0644
	out.Size = uint64(n.w.GetSize(n.path))
	return 0
}

func (n *node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	got := n.w.GetContents(n.path, dest, len(dest), int(off))
	if got < 0 {
		return nil, syscall.EIO
	}
	return fuse.ReadResultData(dest[:got]), 0
}

// Write only succeeds once per lump: the engine has no in-place rewrite,
// only initial population (spec.md §4.8). A second write returns EEXIST
// rather than silently discarding the data.
func (n *node) Write(ctx context.Context, f fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	written := n.w.WriteToFile(n.path, data, len(data), int(off))
	switch {
	case written < 0:
		return 0, syscall.EIO
	case written == 0:
		return 0, syscall.EEXIST
	default:
		return uint32(written), 0
	}
}

func (n *node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	full := n.path + name
	if !n.w.CreateDirectory(full) {
		return nil, syscall.EIO
	}
	child := &node{w: n.w, path: full + "/"}
	out.Attr.Mode = fuse.S_IFDIR | 0755
	return n.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFDIR}), 0
}

func (n *node) Mknod(ctx context.Context, name string, mode, dev uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	full := n.path + name
	if !n.w.CreateFile(full) {
		return nil, syscall.EIO
	}
	child := &node{w: n.w, path: full}
	out.Attr.Mode = fuse.S_IFREG | 0644
	return n.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFREG}), 0
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: wadfs <file.wad> <mountpoint>\n")
		os.Exit(1)
	}

	wadPath, mountPoint := os.Args[1], os.Args[2]

	w, err := wad.Load(wadPath, wad.WithMutex())
	if err != nil {
		log.Fatalf("wadfs: failed to load %s: %s", wadPath, err)
	}
	defer w.Close()

	root := &node{w: w, path: "/"}
	server, err := fs.Mount(mountPoint, root, &fs.Options{
		MountOptions: fuse.MountOptions{
			FsName: "wadfs",
			Name:   "wad",
		},
	})
	if err != nil {
		log.Fatalf("wadfs: mount failed: %s", err)
	}

	log.Printf("wadfs: mounted %s at %s", wadPath, mountPoint)
	server.Wait()
}
