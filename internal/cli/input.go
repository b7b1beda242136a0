package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"

	"github.com/danieljhkim/modlayout/internal/fsops"
	"github.com/danieljhkim/modlayout/internal/layouts"
)

// archiveInput is the archive listing a command works on.
type archiveInput struct {
	Paths []string

	// FS is set when the archive was read from an extracted directory
	FS billy.Filesystem

	// Origin is the directory or list file the paths came from
	Origin string
}

// readArchive reads the listing from dir, from listFile ("-" for stdin), or
// from stdin when neither is given.
func readArchive(dir, listFile string, stdin io.Reader) (*archiveInput, error) {
	switch {
	case dir != "" && listFile != "":
		return nil, fmt.Errorf("--dir and --list are mutually exclusive")

	case dir != "":
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read archive directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		fs := fsops.NewOSFS(dir)
		paths, err := fsops.ListFiles(fs)
		if err != nil {
			return nil, err
		}
		return &archiveInput{Paths: paths, FS: fs, Origin: dir}, nil

	case listFile != "" && listFile != "-":
		f, err := os.Open(listFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open list file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		paths, err := readLines(f)
		if err != nil {
			return nil, err
		}
		return &archiveInput{Paths: paths, Origin: listFile}, nil

	default:
		paths, err := readLines(stdin)
		if err != nil {
			return nil, err
		}
		return &archiveInput{Paths: paths}, nil
	}
}

// readLines returns one path per non-blank line.
func readLines(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read path list: %w", err)
	}
	return paths, nil
}

// modInfo builds the mod metadata from the --name flag and the input origin.
func modInfo(name string, in *archiveInput) layouts.ModInfo {
	mi := layouts.ModInfo{Name: name}
	if in.Origin != "" {
		mi.ArchivePath = filepath.Clean(in.Origin)
	}
	return mi
}
