package console

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/mgnsk/strqueue"
)

type command struct {
	run     func(c *Console, ctx context.Context, args []string) error
	usage   string
	help    string
	minArgs int
	maxArgs int
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"new": {
			run: (*Console).cmdNew, usage: "[name]", maxArgs: 1,
			help: "create a new queue and select it",
		},
		"use": {
			run: (*Console).cmdUse, usage: "name", minArgs: 1, maxArgs: 1,
			help: "select a queue",
		},
		"free": {
			run: (*Console).cmdFree,
			help: "free the selected queue",
		},
		"ih": {
			run: insertHead, usage: "str [n]", minArgs: 1, maxArgs: 2,
			help: "insert str at the head n times, RAND inserts random strings",
		},
		"it": {
			run: insertTail, usage: "str [n]", minArgs: 1, maxArgs: 2,
			help: "insert str at the tail n times, RAND inserts random strings",
		},
		"rh": {
			run: removeHead, usage: "[expected]", maxArgs: 1,
			help: "remove from the head, optionally comparing the value",
		},
		"rt": {
			run: removeTail, usage: "[expected]", maxArgs: 1,
			help: "remove from the tail, optionally comparing the value",
		},
		"size": {
			run: (*Console).cmdSize, usage: "[expected]", maxArgs: 1,
			help: "print the queue size, optionally comparing it",
		},
		"dm": {
			run: (*Console).cmdDeleteMiddle,
			help: "delete the middle element",
		},
		"dedup": {
			run: (*Console).cmdDedup,
			help: "delete every run of adjacent equal elements",
		},
		"swap": {
			run: mutate((*strqueue.Queue).Swap),
			help: "swap every two adjacent elements",
		},
		"reverse": {
			run: mutate((*strqueue.Queue).Reverse),
			help: "reverse the queue",
		},
		"reverseK": {
			run: (*Console).cmdReverseK, usage: "k", minArgs: 1, maxArgs: 1,
			help: "reverse every group of k elements",
		},
		"sort": {
			run: (*Console).cmdSort, usage: "[desc]", maxArgs: 1,
			help: "sort the queue in ascending or descending order",
		},
		"ascend": {
			run: (*Console).cmdAscend,
			help: "remove every element with a smaller element to its right",
		},
		"descend": {
			run: (*Console).cmdDescend,
			help: "remove every element with a greater element to its right",
		},
		"merge": {
			run: (*Console).cmdMerge, usage: "[desc]", maxArgs: 1,
			help: "merge every sorted queue into the oldest one",
		},
		"show": {
			run: func(c *Console, _ context.Context, _ []string) error {
				return c.show()
			},
			help: "print the selected queue",
		},
		"option": {
			run: (*Console).cmdOption, usage: "echo|fail|limit|check value", minArgs: 2, maxArgs: 2,
			help: "change a console option",
		},
		"help": {
			run: (*Console).cmdHelp,
			help: "list commands",
		},
	}
}

func (c *Console) cmdNew(ctx context.Context, args []string) error {
	c.created++

	name := fmt.Sprintf("q%d", c.created)
	if len(args) > 0 {
		name = args[0]
	}

	if err := c.reg.Create(name); err != nil {
		if c.allocationFailed(ctx, err) {
			return nil
		}
		return err
	}

	c.current = name

	return c.show()
}

func (c *Console) cmdUse(_ context.Context, args []string) error {
	if err := c.reg.With(args[0], func(*strqueue.Queue) error { return nil }); err != nil {
		return err
	}

	c.current = args[0]

	return c.show()
}

func (c *Console) cmdFree(_ context.Context, _ []string) error {
	if c.current == "" {
		return ErrNoQueue
	}

	if err := c.reg.Delete(c.current); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s freed\n", c.current)
	c.current = ""

	if names := c.reg.Names(); len(names) > 0 {
		c.current = names[len(names)-1]
	}

	return nil
}

func insertHead(c *Console, ctx context.Context, args []string) error {
	return c.insert(ctx, args, (*strqueue.Queue).InsertHead)
}

func insertTail(c *Console, ctx context.Context, args []string) error {
	return c.insert(ctx, args, (*strqueue.Queue).InsertTail)
}

func (c *Console) insert(ctx context.Context, args []string, insert func(q *strqueue.Queue, s string) error) error {
	n := 1
	if len(args) > 1 {
		var err error
		if n, err = strconv.Atoi(args[1]); err != nil || n < 1 {
			return fmt.Errorf("%w: invalid count %q", ErrUsage, args[1])
		}
	}

	err := c.withCurrent(func(q *strqueue.Queue) error {
		for i := 0; i < n; i++ {
			s := args[0]
			if s == "RAND" {
				s = c.randomString()
			}

			if err := insert(q, s); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil && !c.allocationFailed(ctx, err) {
		return err
	}

	return c.show()
}

func removeHead(c *Console, _ context.Context, args []string) error {
	return c.remove(args, (*strqueue.Queue).RemoveHead)
}

func removeTail(c *Console, _ context.Context, args []string) error {
	return c.remove(args, (*strqueue.Queue).RemoveTail)
}

func (c *Console) remove(args []string, remove func(q *strqueue.Queue, buf []byte) *strqueue.Element) error {
	buf := make([]byte, c.cfg.StringLimit)

	err := c.withCurrent(func(q *strqueue.Queue) error {
		e := remove(q, buf)
		if e == nil {
			fmt.Fprintln(c.out, "queue is empty")
			if len(args) > 0 {
				return fmt.Errorf("%w: queue is empty, expected %q", ErrMismatch, args[0])
			}
			return nil
		}
		defer e.Free()

		value := string(buf)
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			value = string(buf[:i])
		}

		fmt.Fprintf(c.out, "removed %s\n", value)

		if len(args) > 0 && args[0] != value {
			return fmt.Errorf("%w: removed %q, expected %q", ErrMismatch, value, args[0])
		}

		return nil
	})
	if err != nil {
		return err
	}

	return c.show()
}

func (c *Console) cmdSize(_ context.Context, args []string) error {
	return c.withCurrent(func(q *strqueue.Queue) error {
		n := q.Size()
		fmt.Fprintf(c.out, "size = %d\n", n)

		if len(args) > 0 && args[0] != strconv.Itoa(n) {
			return fmt.Errorf("%w: size %d, expected %s", ErrMismatch, n, args[0])
		}

		return nil
	})
}

func (c *Console) cmdDeleteMiddle(_ context.Context, _ []string) error {
	err := c.withCurrent(func(q *strqueue.Queue) error {
		if !q.DeleteMiddle() {
			fmt.Fprintln(c.out, "queue is empty")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.show()
}

func (c *Console) cmdDedup(_ context.Context, _ []string) error {
	err := c.withCurrent(func(q *strqueue.Queue) error {
		q.DeleteDuplicates()
		return nil
	})
	if err != nil {
		return err
	}

	return c.show()
}

func mutate(f func(q *strqueue.Queue)) func(c *Console, _ context.Context, _ []string) error {
	return func(c *Console, _ context.Context, _ []string) error {
		err := c.withCurrent(func(q *strqueue.Queue) error {
			f(q)
			return nil
		})
		if err != nil {
			return err
		}

		return c.show()
	}
}

func (c *Console) cmdReverseK(ctx context.Context, args []string) error {
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid k %q", ErrUsage, args[0])
	}

	return mutate(func(q *strqueue.Queue) {
		q.ReverseK(k)
	})(c, ctx, args)
}

func descending(args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch args[0] {
	case "asc":
		return false, nil
	case "desc":
		return true, nil
	default:
		return false, fmt.Errorf("%w: expected asc or desc, got %q", ErrUsage, args[0])
	}
}

func (c *Console) cmdSort(_ context.Context, args []string) error {
	desc, err := descending(args)
	if err != nil {
		return err
	}

	err = c.withCurrent(func(q *strqueue.Queue) error {
		q.Sort(desc)
		return checkSorted(q, desc)
	})
	if err != nil {
		return err
	}

	return c.show()
}

func checkSorted(q *strqueue.Queue, desc bool) error {
	cmp := q.Comparator()
	if desc {
		cmp = func(a, b string) int { return q.Comparator()(b, a) }
	}

	if !slices.IsSortedFunc(q.Values(), cmp) {
		order := "ascending"
		if desc {
			order = "descending"
		}
		return fmt.Errorf("%w: queue is not in %s order", ErrMismatch, order)
	}

	return nil
}

func (c *Console) cmdAscend(_ context.Context, _ []string) error {
	return c.filter((*strqueue.Queue).Ascend)
}

func (c *Console) cmdDescend(_ context.Context, _ []string) error {
	return c.filter((*strqueue.Queue).Descend)
}

func (c *Console) filter(f func(q *strqueue.Queue) int) error {
	err := c.withCurrent(func(q *strqueue.Queue) error {
		fmt.Fprintf(c.out, "%d elements remain\n", f(q))
		return nil
	})
	if err != nil {
		return err
	}

	return c.show()
}

func (c *Console) cmdMerge(_ context.Context, args []string) error {
	desc, err := descending(args)
	if err != nil {
		return err
	}

	name, n, err := c.reg.Merge(desc)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "merged into %s: %d elements\n", name, n)
	c.current = name

	err = c.withCurrent(func(q *strqueue.Queue) error {
		return checkSorted(q, desc)
	})
	if err != nil {
		return err
	}

	return c.show()
}

func (c *Console) cmdOption(_ context.Context, args []string) error {
	name, value := args[0], args[1]

	switch name {
	case "echo", "check":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: option %s: %v", ErrUsage, name, err)
		}
		if name == "echo" {
			c.cfg.Echo = b
		} else {
			c.cfg.Check = b
		}

	case "fail":
		p, err := strconv.Atoi(value)
		if err != nil || p < 0 || p > 100 {
			return fmt.Errorf("%w: option fail: expected a percentage, got %q", ErrUsage, value)
		}
		c.cfg.FailPercent = p
		c.alloc.SetFailPercent(p)

	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: option limit: expected a positive size, got %q", ErrUsage, value)
		}
		c.cfg.StringLimit = n

	default:
		return fmt.Errorf("%w: unknown option %q", ErrUsage, name)
	}

	fmt.Fprintf(c.out, "%s = %s\n", name, value)

	return nil
}

func (c *Console) cmdHelp(_ context.Context, _ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(c.out, "  %-8s %-28s %s\n", name, cmd.usage, cmd.help)
	}

	return nil
}
