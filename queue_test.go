package strqueue_test

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"

	"github.com/mgnsk/strqueue"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

// failingAllocator fails exactly the failAt-th allocation.
type failingAllocator struct {
	calls  int
	failAt int
	blocks int
}

func (a *failingAllocator) Alloc(int) error {
	a.calls++
	if a.calls == a.failAt {
		return strqueue.ErrAllocation
	}
	a.blocks++
	return nil
}

func (a *failingAllocator) Free(int) {
	a.blocks--
}

func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

var _ = Describe("creating queues", func() {
	Specify("a new queue is empty", func() {
		alloc := strqueue.NewFaultAllocator(0, 1)

		q := newQueue(alloc)
		Expect(q.Size()).To(BeZero())
		Expect(q.Values()).To(BeEmpty())
		Expect(q.Check()).To(Succeed())

		blocks, _ := alloc.Outstanding()
		Expect(blocks).To(Equal(1))

		q.Free()
		expectEmptyAllocator(alloc)
	})

	When("the sentinel cannot be allocated", func() {
		Specify("an allocation failure is returned", func() {
			alloc := strqueue.NewFaultAllocator(100, 1)

			q, err := strqueue.New(strqueue.WithAllocator(alloc))
			Expect(q).To(BeNil())
			Expect(errors.Is(err, strqueue.ErrAllocation)).To(BeTrue())
			expectEmptyAllocator(alloc)
		})
	})

	When("options are invalid", func() {
		Specify("New panics", func() {
			Expect(func() {
				_, _ = strqueue.New(strqueue.WithComparator(nil))
			}).To(Panic())

			Expect(func() {
				_, _ = strqueue.New(strqueue.WithAllocator(nil))
			}).To(Panic())
		})
	})
})

var _ = Describe("freeing queues", func() {
	var alloc *strqueue.FaultAllocator

	BeforeEach(func() {
		alloc = strqueue.NewFaultAllocator(0, 1)
	})

	Specify("every element and the sentinel are released", func() {
		q := newQueue(alloc, "a", "bb", "ccc")
		q.Free()
		expectEmptyAllocator(alloc)
	})

	Specify("a freed queue rejects every operation", func() {
		q := newQueue(alloc, "a")
		q.Free()

		Expect(q.InsertHead("x")).To(MatchError(strqueue.ErrInvalidArgument))
		Expect(q.InsertTail("x")).To(MatchError(strqueue.ErrInvalidArgument))
		Expect(q.RemoveHead(nil)).To(BeNil())
		Expect(q.RemoveTail(nil)).To(BeNil())
		Expect(q.Size()).To(Equal(-1))
		Expect(q.DeleteMiddle()).To(BeFalse())
		Expect(q.DeleteDuplicates()).To(BeFalse())
		Expect(q.Ascend()).To(Equal(-1))
		Expect(q.Descend()).To(Equal(-1))
		Expect(q.Values()).To(BeNil())
		Expect(q.Check()).To(MatchError(strqueue.ErrInvalidArgument))

		q.Free()
		expectEmptyAllocator(alloc)
	})

	Specify("a nil queue is tolerated", func() {
		var q *strqueue.Queue

		q.Free()
		q.Swap()
		q.Reverse()
		q.ReverseK(2)
		q.Sort(false)
		Expect(q.Size()).To(Equal(-1))
		Expect(q.InsertHead("x")).To(MatchError(strqueue.ErrInvalidArgument))
	})

	Specify("a zero value queue is rejected", func() {
		var q strqueue.Queue

		Expect(q.InsertTail("b")).To(MatchError(strqueue.ErrInvalidArgument))
		Expect(q.InsertTail("a")).To(MatchError(strqueue.ErrInvalidArgument))
		Expect(q.Size()).To(Equal(-1))
		Expect(q.DeleteDuplicates()).To(BeFalse())
		Expect(q.Ascend()).To(Equal(-1))
		Expect(q.Descend()).To(Equal(-1))
		Expect(func() { q.Sort(false) }).NotTo(Panic())
		Expect(q.Check()).To(MatchError(strqueue.ErrInvalidArgument))

		n, err := strqueue.Merge([]*strqueue.Queue{&q}, false)
		Expect(n).To(BeZero())
		Expect(errors.Is(err, strqueue.ErrInvalidArgument)).To(BeTrue())

		q.Free()
	})
})

var _ = Describe("elements", func() {
	Specify("the value is copied", func() {
		alloc := strqueue.NewFaultAllocator(0, 1)

		e, err := strqueue.NewElement(alloc, "value")
		Expect(err).To(BeNil())
		Expect(e.Value).To(Equal("value"))

		blocks, size := alloc.Outstanding()
		Expect(blocks).To(Equal(2))
		Expect(size).To(BeNumerically(">", len("value")))

		e.Free()
		e.Free()
		expectEmptyAllocator(alloc)
	})

	Specify("freeing nil is a no-op", func() {
		var e *strqueue.Element
		Expect(e.Free).NotTo(Panic())
	})

	DescribeTable("allocation failures leave nothing allocated",
		func(failAt int) {
			alloc := &failingAllocator{failAt: failAt}

			e, err := strqueue.NewElement(alloc, "value")
			Expect(e).To(BeNil())
			Expect(err).To(MatchError(strqueue.ErrAllocation))
			Expect(alloc.blocks).To(BeZero())
		},
		Entry("node", 1),
		Entry("payload", 2),
	)
})

var _ = Describe("inserting and removing", func() {
	var (
		alloc *strqueue.FaultAllocator
		q     *strqueue.Queue
	)

	BeforeEach(func() {
		alloc = strqueue.NewFaultAllocator(0, 1)
		q = newQueue(alloc)
	})

	AfterEach(func() {
		Expect(q.Check()).To(Succeed())
		q.Free()
		expectEmptyAllocator(alloc)
	})

	Specify("head and tail insertion order", func() {
		Expect(q.InsertHead("b")).To(Succeed())
		Expect(q.InsertHead("a")).To(Succeed())
		Expect(q.InsertTail("c")).To(Succeed())
		Expect(q.Values()).To(Equal([]string{"a", "b", "c"}))
		Expect(q.Size()).To(Equal(3))
	})

	Specify("removing from an empty queue returns nothing", func() {
		buf := []byte("untouched")
		Expect(q.RemoveHead(buf)).To(BeNil())
		Expect(q.RemoveTail(buf)).To(BeNil())
		Expect(string(buf)).To(Equal("untouched"))
	})

	Specify("inserting at the head then removing from the head is an inverse", func() {
		Expect(q.InsertTail("x")).To(Succeed())
		Expect(q.InsertHead("value")).To(Succeed())

		buf := make([]byte, 16)
		e := q.RemoveHead(buf)
		Expect(e).NotTo(BeNil())
		Expect(e.Value).To(Equal("value"))
		Expect(cString(buf)).To(Equal("value"))
		e.Free()

		Expect(q.Values()).To(Equal([]string{"x"}))
	})

	Specify("removing from the tail", func() {
		Expect(q.InsertTail("a")).To(Succeed())
		Expect(q.InsertTail("b")).To(Succeed())

		buf := make([]byte, 16)
		e := q.RemoveTail(buf)
		Expect(cString(buf)).To(Equal("b"))
		e.Free()

		Expect(q.Values()).To(Equal([]string{"a"}))
	})

	DescribeTable("removal truncates into the buffer",
		func(size int, expected string) {
			Expect(q.InsertTail("hello")).To(Succeed())

			buf := bytes.Repeat([]byte{'#'}, size)
			e := q.RemoveHead(buf)
			Expect(e.Value).To(Equal("hello"))
			e.Free()

			if size > 0 {
				Expect(cString(buf)).To(Equal(expected))
			}
		},
		Entry("no buffer", 0, ""),
		Entry("room for the terminator only", 1, ""),
		Entry("truncated", 3, "he"),
		Entry("exact", 6, "hello"),
		Entry("larger", 10, "hello"),
	)

	When("the allocator fails", func() {
		Specify("the queue is unchanged", func() {
			Expect(q.InsertTail("a")).To(Succeed())

			alloc.SetFailPercent(100)
			Expect(q.InsertHead("b")).To(MatchError(strqueue.ErrAllocation))
			Expect(q.InsertTail("b")).To(MatchError(strqueue.ErrAllocation))
			alloc.SetFailPercent(0)

			Expect(q.Values()).To(Equal([]string{"a"}))
		})
	})

	Specify("size follows every interleaving", func() {
		rng := rand.New(rand.NewSource(1))
		size := 0

		for i := 0; i < 500; i++ {
			switch rng.Intn(4) {
			case 0:
				Expect(q.InsertHead("h")).To(Succeed())
				size++
			case 1:
				Expect(q.InsertTail("t")).To(Succeed())
				size++
			case 2:
				if e := q.RemoveHead(nil); e != nil {
					e.Free()
					size--
				}
			case 3:
				if e := q.RemoveTail(nil); e != nil {
					e.Free()
					size--
				}
			}

			Expect(q.Size()).To(Equal(size))
		}
	})
})

var _ = Describe("queue algorithms", func() {
	var alloc *strqueue.FaultAllocator

	BeforeEach(func() {
		alloc = strqueue.NewFaultAllocator(0, 1)
	})

	AfterEach(func() {
		expectEmptyAllocator(alloc)
	})

	run := func(values []string, f func(q *strqueue.Queue)) []string {
		q := newQueue(alloc, values...)
		defer q.Free()

		f(q)

		Expect(q.Check()).To(Succeed())
		return q.Values()
	}

	DescribeTable("deleting the middle element",
		func(values []string, expected []string) {
			Expect(run(values, func(q *strqueue.Queue) {
				Expect(q.DeleteMiddle()).To(BeTrue())
			})).To(Equal(expected))
		},
		Entry("one", []string{"a"}, []string{}),
		Entry("even", []string{"a", "b", "c", "d"}, []string{"a", "b", "d"}),
		Entry("odd", []string{"a", "b", "c"}, []string{"a", "c"}),
	)

	Specify("deleting the middle of an empty queue", func() {
		run(nil, func(q *strqueue.Queue) {
			Expect(q.DeleteMiddle()).To(BeFalse())
		})
	})

	DescribeTable("deleting duplicates",
		func(values []string, expected []string) {
			Expect(run(values, func(q *strqueue.Queue) {
				Expect(q.DeleteDuplicates()).To(BeTrue())
			})).To(Equal(expected))
		},
		Entry("scenario", []string{"a", "a", "b"}, []string{"b"}),
		Entry("empty", []string{}, []string{}),
		Entry("all distinct", []string{"a", "b"}, []string{"a", "b"}),
		Entry("runs", []string{"a", "b", "b", "b", "c", "d", "d"}, []string{"a", "c"}),
	)

	Specify("swapping pairs", func() {
		Expect(run([]string{"1", "2", "3", "4", "5"}, (*strqueue.Queue).Swap)).
			To(Equal([]string{"2", "1", "4", "3", "5"}))
	})

	Specify("reversing twice", func() {
		values := []string{"x", "y", "z", "y"}
		Expect(run(values, func(q *strqueue.Queue) {
			q.Reverse()
			Expect(q.Values()).To(Equal([]string{"y", "z", "y", "x"}))
			q.Reverse()
		})).To(Equal(values))
	})

	Specify("reversing in groups", func() {
		Expect(run([]string{"1", "2", "3", "4", "5", "6", "7"}, func(q *strqueue.Queue) {
			q.ReverseK(3)
		})).To(Equal([]string{"3", "2", "1", "6", "5", "4", "7"}))
	})

	Specify("ascend and descend", func() {
		values := []string{"5", "2", "9", "3", "8"}

		Expect(run(values, func(q *strqueue.Queue) {
			Expect(q.Ascend()).To(Equal(3))
			Expect(q.Ascend()).To(Equal(3))
		})).To(Equal([]string{"2", "3", "8"}))

		Expect(run(values, func(q *strqueue.Queue) {
			Expect(q.Descend()).To(Equal(2))
		})).To(Equal([]string{"9", "8"}))
	})

	Specify("sorting the scenario", func() {
		Expect(run([]string{"b", "a", "c"}, func(q *strqueue.Queue) {
			q.Sort(false)
		})).To(Equal([]string{"a", "b", "c"}))

		Expect(run([]string{"b", "a", "c"}, func(q *strqueue.Queue) {
			q.Sort(true)
		})).To(Equal([]string{"c", "b", "a"}))
	})

	Specify("sorting with a custom comparator is stable", func() {
		q, err := strqueue.New(
			strqueue.WithAllocator(alloc),
			strqueue.WithComparator(func(a, b string) int {
				return strings.Compare(strings.ToLower(a), strings.ToLower(b))
			}),
		)
		Expect(err).To(BeNil())
		defer q.Free()

		for _, v := range []string{"B", "a", "b", "A"} {
			Expect(q.InsertTail(v)).To(Succeed())
		}

		q.Sort(false)
		Expect(q.Values()).To(Equal([]string{"a", "A", "B", "b"}))

		q.Sort(true)
		Expect(q.Values()).To(Equal([]string{"B", "b", "a", "A"}))
	})
})

var _ = Describe("merging queues", func() {
	var alloc *strqueue.FaultAllocator

	BeforeEach(func() {
		alloc = strqueue.NewFaultAllocator(0, 1)
	})

	AfterEach(func() {
		expectEmptyAllocator(alloc)
	})

	Specify("every queue is merged into the first one", func() {
		q1 := newQueue(alloc, "a", "d")
		q2 := newQueue(alloc, "b", "e")
		q3 := newQueue(alloc, "c")
		defer q1.Free()
		defer q2.Free()
		defer q3.Free()

		n, err := strqueue.Merge([]*strqueue.Queue{q1, q2, q3}, false)
		Expect(err).To(BeNil())
		Expect(n).To(Equal(5))
		Expect(q1.Values()).To(Equal([]string{"a", "b", "c", "d", "e"}))
		Expect(q2.Size()).To(BeZero())
		Expect(q3.Size()).To(BeZero())
		Expect(q1.Check()).To(Succeed())
		Expect(q2.Check()).To(Succeed())
	})

	Specify("descending queues", func() {
		q1 := newQueue(alloc, "c", "a")
		q2 := newQueue(alloc, "d", "b")
		defer q1.Free()
		defer q2.Free()

		n, err := strqueue.Merge([]*strqueue.Queue{q1, q2}, true)
		Expect(err).To(BeNil())
		Expect(n).To(Equal(4))
		Expect(q1.Values()).To(Equal([]string{"d", "c", "b", "a"}))
	})

	Specify("an empty chain is invalid", func() {
		n, err := strqueue.Merge(nil, false)
		Expect(n).To(BeZero())
		Expect(err).To(MatchError(strqueue.ErrInvalidArgument))
	})

	Specify("a nil queue in the chain aborts the merge", func() {
		q1 := newQueue(alloc, "a")
		q2 := newQueue(alloc, "b")
		defer q1.Free()
		defer q2.Free()

		n, err := strqueue.Merge([]*strqueue.Queue{q1, nil, q2, nil}, false)
		Expect(n).To(BeZero())
		Expect(errors.Is(err, strqueue.ErrInvalidArgument)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("queue 1"))
		Expect(err.Error()).To(ContainSubstring("queue 3"))

		Expect(q1.Values()).To(Equal([]string{"a"}))
		Expect(q2.Values()).To(Equal([]string{"b"}))
	})
})
