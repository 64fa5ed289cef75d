package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/mgnsk/strqueue/internal/config"
	"github.com/mgnsk/strqueue/internal/console"
)

const cmdYAML = `name: qtest
summary: run queue command scripts, a script named - is read from stdin
arguments:
  - <script>
  - "..."
`

var cmdSet = subcmd.MustFromYAML(cmdYAML)

type qtestFlags struct {
	Config string `subcmd:"config,,yaml configuration file"`
	Echo   bool   `subcmd:"echo,false,print every command before running it"`
	Fail   int    `subcmd:"fail,-1,'percentage of allocations that fail, overrides the configuration file when not negative'"`
	Seed   int64  `subcmd:"seed,-1,'seed for allocation failures and random strings, overrides the configuration file when not negative'"`
}

func init() {
	cmdSet.Set("qtest").MustRunnerAndFlags(qtest, subcmd.MustRegisteredFlagSet(&qtestFlags{}))
}

func main() {
	subcmd.Dispatch(context.Background(), cmdSet)
}

func qtest(ctx context.Context, values any, args []string) error {
	fv := values.(*qtestFlags)

	cfg, err := loadConfig(fv)
	if err != nil {
		return err
	}

	ctx, err = withLogger(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}

	c := console.New(cfg, os.Stdout)
	errs := &errors.M{}

	for _, filename := range args {
		errs.Append(runScript(ctxlog.WithAttributes(ctx, "script", filename), c, filename))
	}

	errs.Append(c.Close(ctx))

	return errs.Err()
}

func loadConfig(fv *qtestFlags) (config.Config, error) {
	cfg := config.Default()

	if fv.Config != "" {
		var err error
		if cfg, err = config.Load(fv.Config); err != nil {
			return config.Config{}, err
		}
	}

	if fv.Echo {
		cfg.Echo = true
	}

	if fv.Fail >= 0 {
		cfg.FailPercent = fv.Fail
	}

	if fv.Seed >= 0 {
		cfg.Seed = fv.Seed
	}

	return cfg, cfg.Validate()
}

func withLogger(ctx context.Context, cfg config.Config, w io.Writer) (context.Context, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return ctxlog.NewJSONLogger(ctx, w, opts), nil
	}

	return ctxlog.WithLogger(ctx, slog.New(slog.NewTextHandler(w, opts))), nil
}

func runScript(ctx context.Context, c *console.Console, filename string) error {
	if filename == "-" {
		return c.Run(ctx, os.Stdin)
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := c.Run(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	return nil
}
