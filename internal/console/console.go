/*
Package console implements a line oriented command interpreter driving string queues.
*/
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/mgnsk/strqueue"
	"github.com/mgnsk/strqueue/internal/config"
	"github.com/mgnsk/strqueue/internal/registry"
)

var (
	// ErrUnknownCommand indicates an unknown command name.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage indicates invalid command arguments.
	ErrUsage = errors.New("invalid arguments")
	// ErrNoQueue indicates that no queue is selected.
	ErrNoQueue = errors.New("no queue selected")
	// ErrMismatch indicates a command result that differs from the expected one.
	ErrMismatch = errors.New("unexpected result")
	// ErrLeak indicates memory still allocated when the console is closed.
	ErrLeak = errors.New("memory leak")
)

// Console runs queue commands against a registry of queues.
type Console struct {
	cfg     config.Config
	out     io.Writer
	alloc   *strqueue.FaultAllocator
	reg     *registry.Registry
	rng     *rand.Rand
	current string
	created int
}

// New creates a console writing command output to out.
func New(cfg config.Config, out io.Writer) *Console {
	alloc := strqueue.NewFaultAllocator(cfg.FailPercent, cfg.Seed)

	return &Console{
		cfg:   cfg,
		out:   out,
		alloc: alloc,
		reg:   registry.New(strqueue.WithAllocator(alloc)),
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Run executes every line read from r. Empty lines and lines starting with '#'
// are skipped. A failing command does not stop the run; the returned error
// lists every failed line.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	logger := ctxlog.Logger(ctx)
	errs := &errors.M{}

	scanner := bufio.NewScanner(r)

	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if c.cfg.Echo {
			fmt.Fprintf(c.out, "cmd> %s\n", line)
		}

		if err := c.Exec(ctxlog.WithAttributes(ctx, "line", n), line); err != nil {
			fmt.Fprintf(c.out, "ERROR: %v\n", err)
			errs.Append(fmt.Errorf("line %d: %q: %w", n, line, err))
		}
	}

	if err := scanner.Err(); err != nil {
		errs.Append(err)
	}

	err := errs.Err()
	if err != nil {
		logger.Error("script finished with errors", "error", err)
	}

	return err
}

// Exec executes a single command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	logger := ctxlog.Logger(ctx)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return fmt.Errorf("%w: usage: %s %s", ErrUsage, name, cmd.usage)
	}

	logger.Debug("running command", "command", name, "args", args, "queue", c.current)

	if err := cmd.run(c, ctx, args); err != nil {
		logger.Error("command failed", "command", name, "queue", c.current, "error", err)
		return err
	}

	if c.cfg.Check && c.current != "" {
		if err := c.reg.With(c.current, (*strqueue.Queue).Check); err != nil {
			logger.Error("queue check failed", "command", name, "queue", c.current, "error", err)
			return fmt.Errorf("after %s: %w", name, err)
		}
	}

	return nil
}

// Close frees every queue and reports memory that is still allocated.
func (c *Console) Close(ctx context.Context) error {
	errs := &errors.M{}
	errs.Append(c.reg.Close())

	if blocks, bytes := c.alloc.Outstanding(); blocks != 0 || bytes != 0 {
		err := fmt.Errorf("%w: %d blocks, %d bytes still allocated", ErrLeak, blocks, bytes)
		ctxlog.Logger(ctx).Error("console closed", "error", err)
		errs.Append(err)
	}

	c.current = ""

	return errs.Err()
}

// withCurrent calls f with exclusive access to the current queue.
func (c *Console) withCurrent(f func(q *strqueue.Queue) error) error {
	if c.current == "" {
		return ErrNoQueue
	}
	return c.reg.With(c.current, f)
}

// show prints the current queue.
func (c *Console) show() error {
	return c.withCurrent(func(q *strqueue.Queue) error {
		fmt.Fprintf(c.out, "%s = [%s]\n", c.current, strings.Join(q.Values(), " "))
		return nil
	})
}

// allocationFailed reports whether err is an allocation failure that the
// configured failure rate makes expected.
func (c *Console) allocationFailed(ctx context.Context, err error) bool {
	if !errors.Is(err, strqueue.ErrAllocation) || c.alloc.FailPercent() == 0 {
		return false
	}

	ctxlog.Logger(ctx).Warn("allocation failed", "queue", c.current, "error", err)
	fmt.Fprintln(c.out, "WARNING: allocation failed")

	return true
}

const randomLetters = "abcdefghijklmnopqrstuvwxyz"

// randomString returns a lowercase string of 5 to 10 letters.
func (c *Console) randomString() string {
	b := make([]byte, 5+c.rng.Intn(6))
	for i := range b {
		b[i] = randomLetters[c.rng.Intn(len(randomLetters))]
	}
	return string(b)
}
