package codegen

import (
	"embed"
	"io/fs"
	"path"
)

// The OCaml runtime library the generated parsers link against ships
// with the generator so a fresh project can be set up in one run.

//go:embed runtime/Combine.ml runtime/Run.ml
var runtimeContent embed.FS

// RuntimeFiles returns the runtime library sources keyed by file
// name, ready to be written next to the generated parser.
func RuntimeFiles() (map[string]string, error) {
	files := map[string]string{}
	err := fs.WalkDir(runtimeContent, "runtime", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := runtimeContent.ReadFile(p)
		if err != nil {
			return err
		}
		files[path.Base(p)] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
