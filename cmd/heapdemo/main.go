// Command heapdemo drives a scripted allocate/free/reallocate workload
// against a heap.Heap and prints the block list and fragmentation
// counter after each step.
//
// Examples:
//
//	$> heapdemo -region 4096 -script "a 64;a 128;f 0;a 32;r 1 256"
//	step 0: a 64
//	  free_blocks=1
//	  [0x7f0000 used 64] [0x7f0050 free 3984] [0x7f0ff0 used 0]
//	step 1: a 128
//	  ...
//
//	$> heapdemo -region 1024 -script "a 16;a 16;f 0;f 1"
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/G36maid/linmo/heap"
)

var (
	regionSize = flag.Int("region", 4096, "size in bytes of the backing region")
	script     = flag.String("script", "", `';'-separated steps: "a SIZE" allocate, "f INDEX" free the Nth live allocation, "r INDEX SIZE" reallocate it, "z COUNT SIZE" zero-allocate`)
)

func main() {
	log.SetPrefix("heapdemo: ")
	log.SetFlags(0)

	flag.Parse()

	if err := run(os.Stdout, *regionSize, *script); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, region int, script string) error {
	mem := make([]byte, region)
	h := heap.New(mem)
	if h == nil {
		return fmt.Errorf("region of %d bytes is too small to initialize", region)
	}

	var live [][]byte

	steps := strings.Split(script, ";")
	for i, raw := range steps {
		step := strings.TrimSpace(raw)
		if step == "" {
			continue
		}
		fmt.Fprintf(w, "step %d: %s\n", i, step)

		if err := runStep(h, &live, step); err != nil {
			return fmt.Errorf("step %d %q: %w", i, step, err)
		}
		fmt.Fprintf(w, "  free_blocks=%d\n", h.FreeBlocks())
		fmt.Fprintf(w, "  %s\n", formatBlocks(h.Blocks()))
	}
	return nil
}

// formatBlocks renders a block-list snapshot as a sequence of
// "[addr state payload]" tags in address order.
func formatBlocks(blocks []heap.BlockInfo) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte(' ')
		}
		state := "free"
		if blk.Used {
			state = "used"
		}
		fmt.Fprintf(&b, "[0x%x %s %d]", blk.Addr, state, blk.Payload)
	}
	return b.String()
}

func runStep(h *heap.Heap, live *[][]byte, step string) error {
	fields := strings.Fields(step)
	if len(fields) == 0 {
		return fmt.Errorf("empty step")
	}

	switch fields[0] {
	case "a":
		size, err := parseArg(fields, 1)
		if err != nil {
			return err
		}
		p := h.Allocate(uintptr(size))
		if p == nil {
			return fmt.Errorf("allocate(%d) returned nil", size)
		}
		*live = append(*live, p)

	case "f":
		idx, err := parseArg(fields, 1)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(*live) {
			return fmt.Errorf("no live allocation at index %d", idx)
		}
		h.Free((*live)[idx])
		*live = append((*live)[:idx], (*live)[idx+1:]...)

	case "r":
		idx, err := parseArg(fields, 1)
		if err != nil {
			return err
		}
		size, err := parseArg(fields, 2)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(*live) {
			return fmt.Errorf("no live allocation at index %d", idx)
		}
		got := h.Reallocate((*live)[idx], uintptr(size))
		if got == nil {
			return fmt.Errorf("reallocate returned nil, original left intact")
		}
		(*live)[idx] = got

	case "z":
		count, err := parseArg(fields, 1)
		if err != nil {
			return err
		}
		size, err := parseArg(fields, 2)
		if err != nil {
			return err
		}
		p := h.ZeroAllocate(uintptr(count), uintptr(size))
		if p == nil {
			return fmt.Errorf("zero_allocate(%d, %d) returned nil", count, size)
		}
		*live = append(*live, p)

	default:
		return fmt.Errorf("unknown op %q", fields[0])
	}
	return nil
}

func parseArg(fields []string, i int) (int, error) {
	if i >= len(fields) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	return strconv.Atoi(fields[i])
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Command heapdemo drives a scripted workload against a heap.Heap.

Usage: heapdemo [OPTIONS]

Options:
  -region N      size in bytes of the backing region (default 4096)
  -script STEPS   ';'-separated steps:
                    a SIZE        allocate
                    f INDEX       free the Nth live allocation
                    r INDEX SIZE  reallocate the Nth live allocation
                    z COUNT SIZE  zero-allocate

Example:

 $> heapdemo -region 4096 -script "a 64;a 128;f 0;a 32;r 1 256"
`)
		os.Exit(0)
	}
}
