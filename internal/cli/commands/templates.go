package commands

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// inputDirName is the input directory every workspace gets.
const inputDirName = "input"

// dotfiles maps embedded names to the dotfile they are installed as.
var dotfiles = map[string]string{
	"gitignore": ".gitignore",
}

// workspaceFile is one file of an embedded workspace template.
type workspaceFile struct {
	src  string // path inside templateFS
	dest string // slash-separated path relative to the workspace root
}

func (f workspaceFile) isInput() bool {
	return strings.HasPrefix(f.dest, inputDirName+"/")
}

// templateFiles lists the files of the named template in walk order.
// Placeholders keeping empty directories in the embed are left out.
func templateFiles(name string) ([]workspaceFile, error) {
	root := path.Join("templates", name)
	if _, err := fs.Stat(templateFS, root); err != nil {
		return nil, fmt.Errorf("unknown template %q", name)
	}

	var files []workspaceFile
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == ".gitkeep" {
			return nil
		}
		dest := strings.TrimPrefix(p, root+"/")
		if dot, ok := dotfiles[path.Base(dest)]; ok {
			dest = path.Join(path.Dir(dest), dot)
		}
		files = append(files, workspaceFile{src: p, dest: dest})
		return nil
	})
	return files, err
}

// writeWorkspace creates the input directory under dir and writes files
// there. Existing files are kept unless force is set. It returns the files
// it wrote.
func writeWorkspace(dir string, files []workspaceFile, force bool) ([]workspaceFile, error) {
	if err := os.MkdirAll(filepath.Join(dir, inputDirName), 0750); err != nil {
		return nil, fmt.Errorf("failed to create input directory: %w", err)
	}

	var written []workspaceFile
	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.dest))
		if !force {
			if _, err := os.Stat(target); err == nil {
				continue
			}
		}

		content, err := templateFS.ReadFile(f.src)
		if err != nil {
			return written, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
			return written, err
		}
		if err := os.WriteFile(target, content, 0600); err != nil {
			return written, err
		}
		written = append(written, f)
	}
	return written, nil
}
