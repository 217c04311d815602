package compile

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"twc/config"
	"twc/state"
)

// buildOutputPath returns where compiled document goes. "src" is the path of
// the document relative to the source (just base name when single file was
// requested), "dst" is the destination directory. Relative directories are
// kept unless NoDirs is set, every path element is cleaned and, if
// requested, transliterated.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	src = filepath.FromSlash(src)
	parts := []string{dst}
	if !env.NoDirs {
		if dir := filepath.Dir(src); dir != "." {
			for seg := range strings.SplitSeq(dir, string(filepath.Separator)) {
				if seg != "" {
					parts = append(parts, cleanPathSegment(seg, env))
				}
			}
		}
	}
	return filepath.Join(append(parts, buildFileName(src, env))...)
}

// buildFileName keeps extension of the source document, only name is
// cleaned.
func buildFileName(src string, env *state.LocalEnv) string {
	ext := filepath.Ext(src)
	return cleanPathSegment(strings.TrimSuffix(filepath.Base(src), ext), env) + strings.ToLower(ext)
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// stylesheetPath returns location of the bundle in destination directory.
func stylesheetPath(dst string, env *state.LocalEnv) string {
	return filepath.Join(dst, config.CleanFileName(env.Cfg.Output.Stylesheet))
}
