package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"twc/state"
)

// CSS prints stylesheet for class strings given on command line, every
// argument is handled as a class attribute of a separate element.
func CSS(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger().Named("css")

	if cmd.Args().Len() == 0 {
		return errors.New("no class text has been specified")
	}

	b, err := newBuilder(&env.Cfg.Compiler, log)
	if err != nil {
		return err
	}
	if cmd.Bool("no-preflight") {
		b.DisablePreflight(true)
	}

	resolved := 0
	for _, class := range cmd.Args().Slice() {
		// failures are logged by builder
		if _, err := b.Trace(class); err == nil {
			resolved++
		}
	}
	if resolved == 0 {
		return errors.New("none of the classes could be resolved")
	}

	var out io.Writer = os.Stdout
	if fname := cmd.String("output"); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
		log.Debug("Writing stylesheet", zap.String("file", fname))
	} else if w := cmd.Root().Writer; w != nil {
		out = w
	}
	if cmd.Bool("explain") {
		_, err := io.WriteString(out, b.Describe())
		return err
	}
	return b.WriteBundle(out)
}
