// Command roundrobin runs this system's S1 scenario: three green threads,
// each printing its id and yielding three times, round-robin FIFO.
//
// Run with: go run ./cmd/roundrobin
package main

import (
	"fmt"

	greenthread "github.com/joeycumines/go-greenthread"
)

func main() {
	sched := greenthread.NewScheduler()

	for id := 0; id < 3; id++ {
		id := id
		sched.Spawn(func() {
			for step := 0; step < 3; step++ {
				fmt.Printf("%d-step-%d\n", id, step)
				if err := sched.Yield(); err != nil {
					panic(err)
				}
			}
		})
	}

	sched.Run()
}
