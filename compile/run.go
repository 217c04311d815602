// Package compile implements "compile" and "css" commands: it finds markup
// documents, rewrites them sharing single utility builder and writes
// resulting stylesheet.
package compile

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/ianaindex"

	"twc/archive"
	"twc/common"
	"twc/markup"
	"twc/state"
	"twc/tailwind"
)

// document is a single markup file found in the source.
type document struct {
	// path relative to the source, slash separated
	name string
	// full location for diagnostics
	origin string
	load   func() ([]byte, error)
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger().Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if name := cmd.String("mode"); len(name) > 0 {
		mode, err := common.ParseInlineMode(name)
		if err != nil {
			log.Warn("Unknown mode requested, using configured one", zap.String("mode", name), zap.Error(err))
		} else {
			env.Mode = mode
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// documents without proper charset declaration may need help
	if cp := cmd.String("charset"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully decoding all documents", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("mode", env.EffectiveMode()), zap.Bool("forced", env.ModeOverridden()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, env, log)
}

// process compiles every document found in src into dst and writes the
// stylesheet.
func process(ctx context.Context, src, dst string, env *state.LocalEnv, log *zap.Logger) error {
	b, err := newBuilder(&env.Cfg.Compiler, log)
	if err != nil {
		return err
	}

	docs, err := discover(ctx, src, env.Cfg.Output.InputExtensions, log)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents to compile were found (%s)", src)
	}

	compiled, err := compileDocuments(ctx, docs, dst, b, env, log)
	if err != nil {
		return err
	}
	if compiled == 0 {
		return errors.New("none of the documents could be compiled")
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("utilities.txt", []byte(b.Describe()))
	}
	return writeStylesheet(b, dst, env, log)
}

// discover finds documents in src which could be a file, a directory, zip
// archive or path inside zip archive ("site.zip/pages").
func discover(ctx context.Context, src string, exts []string, log *zap.Logger) ([]document, error) {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return discoverDir(ctx, head, exts, log)
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			inner := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			return discoverArchive(ctx, head, inner, exts, log)
		}

		if len(tail) != 0 {
			break
		}
		// explicitly named file is accepted with any extension
		isMarkup, err := isMarkupFile(head, []string{filepath.Ext(head)})
		if err != nil {
			return nil, fmt.Errorf("unable to check file type: %w", err)
		}
		if !isMarkup {
			return nil, fmt.Errorf("input was not recognized as markup document (%s)", head)
		}
		return []document{fileDocument(filepath.Base(head), head)}, nil
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

func fileDocument(name, path string) document {
	return document{
		name:   filepath.ToSlash(name),
		origin: path,
		load:   func() ([]byte, error) { return os.ReadFile(path) },
	}
}

// discoverDir walks directory tree collecting documents with configured
// extensions. Symbolic links are not followed.
func discoverDir(ctx context.Context, dir string, exts []string, log *zap.Logger) ([]document, error) {
	var docs []document
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isMarkup, err := isMarkupFile(path, exts)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isMarkup {
			log.Debug("Skipping file, not recognized as markup", zap.String("file", path))
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		docs = append(docs, fileDocument(rel, path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process directory: %w", err)
	}
	if len(docs) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return docs, nil
}

// discoverArchive collects documents located under "inner" path of the zip
// archive. Archived documents are read right away.
func discoverArchive(ctx context.Context, path, inner string, exts []string, log *zap.Logger) ([]document, error) {
	var docs []document
	err := archive.Walk(path, inner, func(name string) bool { return hasMarkupExt(name, exts) }, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		isMarkup, err := isMarkupInArchive(f, exts)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if !isMarkup {
			log.Debug("Skipping file, not recognized as markup", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}

		data, err := archive.ReadFile(f, maxDocumentSize)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}

		name := strings.TrimPrefix(strings.TrimPrefix(f.Name, strings.Trim(inner, "/")), "/")
		if name == "" {
			// inner path named the file itself
			name = filepath.Base(f.Name)
		}
		docs = append(docs, document{
			name:   name,
			origin: arc + ":" + f.Name,
			load:   func() ([]byte, error) { return data, nil },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process archive: %w", err)
	}
	if len(docs) == 0 {
		log.Debug("Nothing to process", zap.String("archive", path))
	}
	return docs, nil
}

// compileDocuments rewrites documents concurrently sharing the builder.
// Failure of a single document is logged and does not stop others. Returns
// number of successfully compiled documents.
func compileDocuments(ctx context.Context, docs []document, dst string, b *tailwind.Builder, env *state.LocalEnv, log *zap.Logger) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.Cfg.Compiler.Workers)

	var compiled atomic.Int64
	targets := make(map[string]string, len(docs))
	for _, doc := range docs {
		if gctx.Err() != nil {
			break
		}

		outputName := buildOutputPath(doc.name, dst, env)
		if prev, exists := targets[outputName]; exists {
			log.Error("Unable to compile document, output name clashes", zap.String("file", doc.origin), zap.String("with", prev), zap.String("to", outputName))
			continue
		}
		targets[outputName] = doc.origin

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := compileDocument(doc, outputName, b, env, log); err != nil {
				log.Error("Unable to compile document", zap.String("file", doc.origin), zap.Error(err))
				return nil
			}
			compiled.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(compiled.Load()), err
	}
	return int(compiled.Load()), ctx.Err()
}

// compileDocument rewrites single document into outputName.
func compileDocument(doc document, outputName string, b *tailwind.Builder, env *state.LocalEnv, log *zap.Logger) (rerr error) {
	var stats markup.Stats

	log.Debug("Compilation starting", zap.String("from", doc.origin))
	defer func(start time.Time) {
		// keep going with other documents whatever happens
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else if rerr == nil {
			log.Info("Compilation completed", zap.String("from", doc.name), zap.String("to", outputName),
				zap.Int("mutated", stats.Mutated), zap.Int("skipped", stats.Skipped), zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	if err := prepareOutput(outputName, env, log); err != nil {
		return err
	}

	data, err := doc.load()
	if err != nil {
		return fmt.Errorf("unable to read document: %w", err)
	}
	env.Rpt.StoreData("source/"+doc.name, data)

	text, enc, err := decode(data, env.CodePage)
	if err != nil {
		return err
	}
	log.Debug("Document decoded", zap.String("file", doc.name), zap.String("charset", enc))

	var opts []markup.Option
	if enc != "utf-8" {
		opts = append(opts, markup.DeclareUTF8())
	}

	var out string
	if out, stats, err = markup.Rewrite(bytes.NewReader(text), b, env.EffectiveMode(), log, opts...); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	env.Rpt.Store("result/"+doc.name, outputName)
	return nil
}

// prepareOutput makes sure file could be written honoring overwrite request.
func prepareOutput(outputName string, env *state.LocalEnv, log *zap.Logger) error {
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		return os.Remove(outputName)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

// writeStylesheet writes bundle of everything discovered. Inline mode has
// nothing to bundle.
func writeStylesheet(b *tailwind.Builder, dst string, env *state.LocalEnv, log *zap.Logger) error {
	mode := env.EffectiveMode()
	if !mode.Bundled() {
		log.Debug("Stylesheet is not needed", zap.Stringer("mode", mode))
		return nil
	}

	outputName := stylesheetPath(dst, env)
	if err := prepareOutput(outputName, env, log); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	f, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create stylesheet: %w", err)
	}
	if err := b.WriteBundle(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	env.Rpt.Store("result/"+filepath.Base(outputName), outputName)

	log.Info("Stylesheet written", zap.String("to", outputName), zap.Int("utilities", len(b.Utilities())))
	return nil
}
