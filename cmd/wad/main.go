// Command wad is a non-FUSE CLI over the wad engine: it exercises
// ls/cat/info/mkdir/touch/write directly against a .wad file without
// mounting it, the same role cmd/sqfs plays for inspecting SquashFS images.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chloekaii/wadfs"
)

const usage = `usage: wad <file.wad> <command> [args...]

commands:
  info                 print the header magic and namespace tree
  ls [path]            list a directory's entries (default "/")
  cat <path>           write a lump's contents to stdout
  mkdir <path>         create a namespace directory
  touch <path>         create an empty lump
  write <path> [text]  write text to a lump (reads stdin if text is omitted)
`

func main() {
	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	wadPath := os.Args[1]
	cmd := os.Args[2]
	rest := os.Args[3:]

	w, err := wad.Load(wadPath)
	if err != nil {
		log.Fatalf("wad: %s", err)
	}
	defer w.Close()

	switch cmd {
	case "info":
		cmdInfo(w)
	case "ls":
		cmdLs(w, rest)
	case "cat":
		cmdCat(w, rest)
	case "mkdir":
		cmdMkdir(w, rest)
	case "touch":
		cmdTouch(w, rest)
	case "write":
		cmdWrite(w, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func cmdInfo(w *wad.Wad) {
	fmt.Printf("path:  %s\n", w.Path())
	fmt.Printf("magic: %s\n", w.GetMagic())
	if err := w.WriteTree(os.Stdout); err != nil {
		log.Fatalf("wad: info: %s", err)
	}
}

func cmdLs(w *wad.Wad, args []string) {
	path := "/"
	if len(args) > 0 {
		path = args[0]
	}

	var entries []string
	if n := w.GetDirectory(path, &entries); n < 0 {
		log.Fatalf("wad: ls: %s is not a directory", path)
	}
	for _, e := range entries {
		fmt.Println(e)
	}
}

func cmdCat(w *wad.Wad, args []string) {
	if len(args) < 1 {
		log.Fatalf("wad: cat: missing path")
	}
	path := args[0]

	size := w.GetSize(path)
	if size < 0 {
		log.Fatalf("wad: cat: %s is not content", path)
	}

	buf := make([]byte, size)
	n := w.GetContents(path, buf, size, 0)
	if n < 0 {
		log.Fatalf("wad: cat: failed to read %s", path)
	}
	os.Stdout.Write(buf[:n])
}

func cmdMkdir(w *wad.Wad, args []string) {
	if len(args) < 1 {
		log.Fatalf("wad: mkdir: missing path")
	}
	if !w.CreateDirectory(args[0]) {
		log.Fatalf("wad: mkdir: failed to create %s: %s", args[0], w.LastError())
	}
}

func cmdTouch(w *wad.Wad, args []string) {
	if len(args) < 1 {
		log.Fatalf("wad: touch: missing path")
	}
	if !w.CreateFile(args[0]) {
		log.Fatalf("wad: touch: failed to create %s: %s", args[0], w.LastError())
	}
}

func cmdWrite(w *wad.Wad, args []string) {
	if len(args) < 1 {
		log.Fatalf("wad: write: missing path")
	}
	path := args[0]

	var data []byte
	if len(args) > 1 {
		data = []byte(strings.Join(args[1:], " "))
	} else {
		read, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("wad: write: failed to read stdin: %s", err)
		}
		data = read
	}

	n := w.WriteToFile(path, data, len(data), 0)
	switch {
	case n < 0:
		log.Fatalf("wad: write: %s: %s", path, w.LastError())
	case n == 0:
		log.Fatalf("wad: write: %s: %s", path, w.LastError())
	default:
		fmt.Printf("wrote %d bytes to %s\n", n, path)
	}
}
