package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

// withProgress runs fn while drawing a simulated progress bar on a TTY.
// The bar snaps to 100% when fn returns successfully.
func withProgress(cmd *cobra.Command, sim services.ProgressSimulator, label string, fn func() error) error {
	if !isTerminal() {
		return fn()
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	out := cmd.OutOrStdout()
	var mu sync.Mutex
	draw := func(pct float64) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "\r%s %s", label, bar.ViewAs(pct/100))
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	done := make(chan struct{})
	go func() {
		defer close(done)
		sim.Run(ctx, draw)
	}()

	draw(0)
	err := fn()
	cancel()
	<-done

	if err == nil {
		draw(100)
	}
	fmt.Fprintln(out)
	return err
}
