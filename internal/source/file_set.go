package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"slices"

	"fortio.org/safecast"
)

// File is one loaded source file.
type File struct {
	Path    string
	Content []byte
	Hash    [32]byte
	LineIdx []uint32 // offsets of '\n'
}

// FileSet holds the files a package was inspected from. Content is
// normalized (no BOM, LF line endings) so hashes do not depend on checkout
// settings.
type FileSet struct {
	files []*File
	index map[string]int
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]int)}
}

// Add stores content under path, replacing an earlier file with that path.
func (fs *FileSet) Add(path string, content []byte) *File {
	content = removeBOM(content)
	content = normalizeCRLF(content)
	f := &File{
		Path:    normalizePath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		LineIdx: buildLineIndex(content),
	}
	if i, ok := fs.index[f.Path]; ok {
		fs.files[i] = f
		return f
	}
	fs.index[f.Path] = len(fs.files)
	fs.files = append(fs.files, f)
	return f
}

// Load reads path from disk and adds it.
func (fs *FileSet) Load(path string) (*File, error) {
	// #nosec G304 -- path comes from the package loader
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fs.Add(path, content), nil
}

// Get returns the file stored under path.
func (fs *FileSet) Get(path string) (*File, bool) {
	i, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return fs.files[i], true
}

// Len is the number of files.
func (fs *FileSet) Len() int { return len(fs.files) }

// Hashes returns the content hashes ordered by path.
func (fs *FileSet) Hashes() [][32]byte {
	files := slices.Clone(fs.files)
	slices.SortFunc(files, func(a, b *File) int { return bytes.Compare([]byte(a.Path), []byte(b.Path)) })
	out := make([][32]byte, len(files))
	for i, f := range files {
		out[i] = f.Hash
	}
	return out
}

// Line returns the text of the 1-based line, without the newline.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	var start, end uint32
	if n > 1 {
		if n-2 >= lines {
			return ""
		}
		start = f.LineIdx[n-2] + 1
	}
	if n-1 < lines {
		end = f.LineIdx[n-1]
	} else {
		end, err = safecast.Conv[uint32](len(f.Content))
		if err != nil {
			panic(fmt.Errorf("content length overflow: %w", err))
		}
	}
	if int(start) > len(f.Content) || start > end {
		return ""
	}
	return string(f.Content[start:end])
}
