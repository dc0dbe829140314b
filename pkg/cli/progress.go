package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Fepozopo/resynth/pkg/synth"
	"github.com/schollz/progressbar/v3"
)

// attachProgress wires a terminal progress bar into the run's progress
// callback. The bar is created lazily on the first callback because the
// plan length (and therefore the total) is only known once the run has
// started. The returned finish func closes out the bar's line.
func attachProgress(p *synth.Params, label string) (finish func()) {
	var bar *progressbar.ProgressBar
	p.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(label),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(done)
	}
	return func() {
		if bar != nil {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}
}
