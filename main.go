// Command cassis is the CaSSiS CLI driver (spec.md §6): onepass,
// create, process, info, help. Exit codes: 0 on success, non-zero on
// any error (spec §7).
package main

import (
	"github.com/evolbioinfo/cassis/cmd"
	"github.com/evolbioinfo/cassis/internal/iolog"
)

func main() {
	if err := cmd.Execute(); err != nil {
		iolog.ExitWithMessage(err)
	}
}
