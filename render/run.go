package render

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"aesthetic/archive"
	"aesthetic/config"
	"aesthetic/state"
	"aesthetic/style"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

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

	env.OutputFormat = env.Cfg.Output.Format
	if to := cmd.String("to"); len(to) > 0 {
		if f, err := config.ParseOutputFormat(to); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.OutputFormat))
		} else {
			env.OutputFormat = f
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	p := &processor{env: env, dst: dst, log: log}
	if markup := cmd.String("hydrate"); len(markup) > 0 {
		if p.primer, err = os.ReadFile(markup); err != nil {
			return fmt.Errorf("unable to read markup to hydrate from: %w", err)
		}
		env.Rpt.Store("hydrate/"+filepath.Base(markup), markup)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.OutputFormat))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Int("documents", p.count), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return p.process(ctx, src)
}

// processor renders style documents found under a single source.
type processor struct {
	env    *state.LocalEnv
	dst    string
	primer []byte // markup of previous render, if any
	count  int
	log    *zap.Logger
}

func isDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// process determines the input type (directory, archive, path inside of
// archive or single document) and renders accordingly.
func (p *processor) process(ctx context.Context, src string) error {
	head, rest, err := archive.Split(src)
	if err != nil {
		return err
	}
	fi, err := os.Stat(head)
	if err != nil {
		return err
	}

	if fi.Mode().IsDir() {
		return p.processDir(ctx, head)
	}

	arc, err := archive.IsArchive(head)
	if err != nil {
		return fmt.Errorf("unable to check archive type: %w", err)
	}
	if arc {
		return p.processArchive(ctx, head, rest)
	}
	if len(rest) > 0 {
		return fmt.Errorf("input source was not found (%s) => (%s)", head, rest)
	}

	data, err := os.ReadFile(head)
	if err != nil {
		return err
	}
	return p.processDocument(ctx, data, filepath.Base(head))
}

// processDir walks directory tree rendering every document. Failures of
// individual documents are logged and do not stop processing.
func (p *processor) processDir(ctx context.Context, dir string) error {
	return filepath.WalkDir(dir, func(fname string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			p.log.Warn("Skipping path", zap.String("path", fname), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() || !isDocument(fname) {
			return nil
		}
		data, err := os.ReadFile(fname)
		if err != nil {
			p.log.Error("Unable to read document", zap.String("file", fname), zap.Error(err))
			return nil
		}
		rel, err := filepath.Rel(dir, fname)
		if err != nil {
			return err
		}
		if err := p.processDocument(ctx, data, rel); err != nil {
			p.log.Error("Unable to render document", zap.String("file", fname), zap.Error(err))
		}
		return nil
	})
}

// processArchive renders documents inside of archive found under prefix.
func (p *processor) processArchive(ctx context.Context, arc, prefix string) error {
	return archive.Walk(arc, prefix, isDocument, func(_ string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := archive.ReadFile(f)
		if err != nil {
			p.log.Error("Unable to read document in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		if err := p.processDocument(ctx, data, filepath.FromSlash(f.Name)); err != nil {
			p.log.Error("Unable to render document in archive", zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

// processDocument renders single document with its own engine. "src" is
// document path relative to the source, it defines output location.
func (p *processor) processDocument(ctx context.Context, data []byte, src string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log := p.log.With(zap.String("document", src))

	doc, err := ParseDocument(bytes.NewReader(data))
	if err != nil {
		return err
	}
	p.env.Rpt.StoreData(path.Join("input", filepath.ToSlash(src)), data)

	e := p.env.NewEngine(style.WithLogFields(zap.String("document", src)))
	if len(p.primer) > 0 {
		report, err := Prime(e, bytes.NewReader(p.primer), p.env.Cfg.Engine.Direction, log)
		if err != nil {
			return err
		}
		if diags := report.Diagnostics(); len(diags) > 0 {
			log.Warn("Hydration was not clean", zap.Errors("diagnostics", diags))
		}
		log.Debug("Engine hydrated", zap.Int("entries", report.Hits()), zap.Int("rule index", e.RuleIndex()))
	}

	res, err := Apply(e, doc)
	if err != nil {
		log.Warn("Document rendered partially", zap.Error(err))
	}

	out := p.outputPath(src, doc)
	if _, err := os.Stat(out); err == nil && !p.env.Overwrite {
		return fmt.Errorf("output file already exists: %s", out)
	}

	buf := new(bytes.Buffer)
	if err := Write(buf, e, doc, res, p.env.OutputFormat, &p.env.Cfg.Output.Page, log); err != nil {
		return fmt.Errorf("unable to render output: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	p.env.Rpt.Store(path.Join("output", filepath.ToSlash(src)), out)
	p.count++

	log.Info("Document rendered", zap.String("to", out), zap.Int("classes", len(res.Classes)), zap.Int("inserted", res.Inserted))
	return nil
}

// NameValues holds variables available for output name template expansion.
type NameValues struct {
	Name   string // document file name without extension
	Dir    string // document directory relative to the source
	Title  string
	Format string
}

// outputPath builds destination file path using configured name template,
// keeping source directory structure. Name template may introduce
// subdirectories of its own.
func (p *processor) outputPath(src string, doc *Document) string {
	values := NameValues{
		Name:   strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Dir:    filepath.ToSlash(filepath.Dir(src)),
		Title:  doc.Title,
		Format: p.env.OutputFormat.String(),
	}
	name, err := expandTemplate(config.OutputNameTemplateFieldName, p.env.Cfg.Output.NameTemplate, values)
	if err != nil {
		p.log.Warn("Unable to prepare output file name, using default", zap.Error(err))
		name = values.Name
	}

	parts := []string{p.dst, filepath.Dir(src)}
	for segment := range strings.SplitSeq(filepath.ToSlash(name), "/") {
		if segment = strings.TrimSpace(segment); len(segment) > 0 {
			parts = append(parts, config.CleanFileName(segment))
		}
	}
	if len(parts) == 2 {
		parts = append(parts, config.CleanFileName(values.Name))
	}
	parts[len(parts)-1] += p.env.OutputFormat.Ext()
	return filepath.Join(parts...)
}

func expandTemplate(name config.TemplateFieldName, field string, values NameValues) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
