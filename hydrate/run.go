package hydrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"aesthetic/direction"
	"aesthetic/state"
)

// Run hydrates fresh engine from persisted markup and reports what was
// restored. Report goes to DESTINATION or to standard output.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("hydrate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no markup source has been specified")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read markup: %w", err)
	}
	env.Rpt.StoreData("input/"+filepath.Base(src), data)

	report, err := Inspect(env, bytes.NewReader(data), log)
	if err != nil {
		return err
	}
	if diags := report.Diagnostics(); len(diags) > 0 {
		log.Warn("Hydration was not clean", zap.String("source", src), zap.Errors("diagnostics", diags))
	}
	log.Info("Markup hydrated", zap.String("source", src), zap.Int("sheets", len(report.Sheets)), zap.Int("entries", report.Hits()))

	out := report.Tree()
	env.Rpt.StoreData("hydration.txt", []byte(out))

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		_, err = io.WriteString(cmd.Root().Writer, out)
		return err
	}
	if _, err := os.Stat(dst); err == nil && !cmd.Bool("overwrite") {
		return fmt.Errorf("output file already exists: %s", dst)
	}
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}

// Inspect hydrates engine configured by env from markup and returns the
// report.
func Inspect(env *state.LocalEnv, markup io.Reader, log *zap.Logger) (*Report, error) {
	e := env.NewEngine()
	report, err := New(e, log, WithDirection(env.Cfg.Engine.Direction, direction.New())).HydrateMarkup(markup)
	if err != nil {
		return nil, err
	}
	log.Debug("Engine hydrated", zap.Stringer("engine", e.ID()), zap.Int("rule index", e.RuleIndex()))
	return report, nil
}
