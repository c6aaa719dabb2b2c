package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// FileSystem abstracts the file probes the resolver performs, so discovery
// can be tested without touching the disk.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem is the FileSystem used outside tests.
type RealFileSystem struct{}

func (*RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (*RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// searchDepths are the directories probed relative to the working directory.
// Binaries start from the repo root, from cmd/<name>/, or from a package
// directory up to two levels down during tests.
var searchDepths = []string{".", "..", "../.."}

// Resolver locates the config.yml and .env files for a service when no
// explicit paths were supplied.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles holds the discovered (or explicitly supplied) file paths.
// An empty field means nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the config and env files for serviceName. Explicit
// paths in opts win; otherwise the standard locations are searched.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	out := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if out.ConfigFile == "" {
		out.ConfigFile = r.firstExisting(configCandidates(serviceName))
	}
	if out.EnvFile == "" {
		out.EnvFile = r.firstExisting(envCandidates(serviceName))
	}
	return out
}

func (r *Resolver) firstExisting(candidates []string) string {
	for _, path := range candidates {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// nameForms returns the service name plus its short form, the segment after
// the last dash, so "skillsense-auth" is also probed as "auth".
func nameForms(serviceName string) []string {
	if i := strings.LastIndex(serviceName, "-"); i >= 0 {
		return []string{serviceName, serviceName[i+1:]}
	}
	return []string{serviceName}
}

// configCandidates lists config.yml locations in probe order: cmd/<name>/
// at increasing depth, then the shared config/ directory, then the root.
func configCandidates(serviceName string) []string {
	var candidates []string
	for _, depth := range searchDepths {
		for _, name := range nameForms(serviceName) {
			candidates = append(candidates, filepath.Join(depth, "cmd", name, "config.yml"))
		}
	}
	return append(candidates,
		filepath.Join(".", "config", "config.yml"),
		filepath.Join("..", "config", "config.yml"),
		"config.yml",
	)
}

// envCandidates lists .env locations. A service-specific .env.<name> beats a
// plain .env everywhere, and directories run from most to least specific.
func envCandidates(serviceName string) []string {
	var dirs []string
	for _, name := range nameForms(serviceName) {
		for _, depth := range searchDepths {
			dirs = append(dirs,
				filepath.Join(depth, "cmd", name),
				filepath.Join(depth, "config", name),
			)
		}
	}
	for _, depth := range searchDepths {
		dirs = append(dirs, filepath.Join(depth, "config"), depth)
	}

	var candidates []string
	for _, file := range []string{".env." + serviceName, ".env"} {
		for _, dir := range dirs {
			candidates = append(candidates, filepath.Join(dir, file))
		}
	}
	return candidates
}
