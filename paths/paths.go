// Package paths locates character definition files in the places users
// commonly keep them, so the command line tools can be pointed at a
// bare filename.
package paths

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// searchDirs returns the directories Find looks in, in order: the
// working directory, its chars/ subdirectory, $MSAGENT_CHARS, and a
// chars/ directory next to the binary.
func searchDirs() []string {
	dirs := []string{".", "chars"}
	if env := os.Getenv("MSAGENT_CHARS"); env != "" {
		dirs = append(dirs, env)
	}
	dirs = append(dirs, filepath.Join(filepath.Dir(os.Args[0]), "chars"))
	return dirs
}

// Find locates the passed definition filename and returns a path it can
// be opened at, or "" when no search directory has it.
func Find(fileName string) string {
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, fileName)
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same places Find would look, and
// opens it.
func Open(fileName string) (*os.File, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Errorf("%s not found in any character directory", fileName)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening found character file")
	}
	return f, nil
}

// SetupFilePathFlag creates a string flag with the passed name, with a
// sane default for the path to the file if Find locates it. If not, the
// flag defaults to an empty string.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "Path to "+fileName)
}
