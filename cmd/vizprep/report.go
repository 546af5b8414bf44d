package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/openvqa/vizprep/dataset"
)

// maxMissingShown caps how many missing image names a summary lists.
const maxMissingShown = 5

var (
	keptColor = color.New(color.FgGreen).SprintfFunc()
	warnColor = color.New(color.FgYellow).SprintfFunc()
)

func printResult(w io.Writer, res *dataset.Result) {
	tint, warn := fmt.Sprintf, fmt.Sprintf
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		tint, warn = keptColor, warnColor
	}
	fmt.Fprintf(w, "%s: %s\n", res.Name,
		tint("%d of %d records retained", res.TargetCount, res.OriginalCount))
	switch res.Mode {
	case dataset.ModeInPlace:
		fmt.Fprintf(w, "  kept %d images, removed %d\n", res.Kept, res.Removed)
	case dataset.ModeCopyOut:
		fmt.Fprintf(w, "  copied %d of %d images\n", res.Copied, res.Kept)
	}
	if len(res.Missing) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", warn("%d referenced images missing:", len(res.Missing)))
	for i, name := range res.Missing {
		if i == maxMissingShown {
			fmt.Fprintf(w, "    +%d more\n", len(res.Missing)-maxMissingShown)
			break
		}
		fmt.Fprintf(w, "    - %s\n", name)
	}
}
