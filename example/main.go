package main

import (
	"fmt"
	"strings"

	"github.com/mgnsk/strqueue"
)

func main() {
	q, err := strqueue.New(strqueue.WithComparator(func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}))
	if err != nil {
		panic(err)
	}
	defer q.Free()

	for _, s := range []string{"pear", "Apple", "fig", "apple", "Kiwi"} {
		if err := q.InsertTail(s); err != nil {
			panic(err)
		}
	}

	// Sorting is stable, so "Apple" stays before "apple".
	q.Sort(false)
	fmt.Println(q.Values())

	q.DeleteDuplicates()
	fmt.Println(q.Values())

	buf := make([]byte, 4)
	if e := q.RemoveHead(buf); e != nil {
		// The copy is truncated to fit buf, including the terminating NUL.
		fmt.Printf("%s\n", buf[:3])
		e.Free()
	}
}
