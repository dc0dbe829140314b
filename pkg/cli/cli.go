package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/Fepozopo/resynth/pkg/synth"
)

// Version is the build version; release builds override it at link time
// with -ldflags "-X github.com/Fepozopo/resynth/pkg/cli.Version=...".
var Version = "0.1.0"

type options struct {
	autism    float64
	neighbors int
	tries     int
	magic     int
	scale     int
	seed      uint64
	hTile     bool
	vTile     bool
	preview   bool
	doUpdate  bool
	doVersion bool
}

// Run is the command-line entry point. It synthesizes one output per
// input path and returns the process exit status: 0 on success,
// decremented once per failed file, masked to the low byte the way an
// operating system reads a C main's negative return.
func Run(args []string) int {
	LoadEnv()

	var opt options
	fs := flag.NewFlagSet("resynth", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(fs) }

	fs.Float64Var(&opt.autism, "a", envFloatOption("autism", 32.0/256.0), optionHelp("autism"))
	fs.IntVar(&opt.neighbors, "N", envIntOption("neighbors", 29), optionHelp("neighbors"))
	fs.IntVar(&opt.tries, "M", envIntOption("tries", 192), optionHelp("tries"))
	fs.IntVar(&opt.magic, "m", envIntOption("magic", 192), optionHelp("magic"))
	fs.IntVar(&opt.scale, "s", envIntOption("scale", 0), optionHelp("scale"))
	fs.Uint64Var(&opt.seed, "S", envUintOption("seed", 0), optionHelp("seed"))
	fs.BoolVar(&opt.hTile, "tileh", envBoolOption("htile", false), optionHelp("htile"))
	fs.BoolVar(&opt.vTile, "tilev", envBoolOption("vtile", false), optionHelp("vtile"))
	fs.BoolVar(&opt.preview, "p", envTruthy("RESYNTH_PREVIEW"), "preview each result inline in the terminal")
	fs.BoolVar(&opt.doUpdate, "update", false, "check for a newer release and offer to install it")
	fs.BoolVar(&opt.doVersion, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if opt.doVersion {
		fmt.Println("resynth " + Version)
		return 0
	}
	if opt.doUpdate {
		if err := CheckForUpdate(Version); err != nil {
			fmt.Fprintf(os.Stderr, "resynth: %v\n", err)
			return 1
		}
		return 0
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ret := 0
	for _, path := range files {
		if err := processFile(ctx, path, &opt); err != nil {
			fmt.Fprintf(os.Stderr, "resynth: %s: %v\n", path, err)
			ret--
		}
		if ctx.Err() != nil {
			break
		}
	}
	return ret & 0xff
}

func processFile(ctx context.Context, path string, opt *options) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	st, err := synth.NewTextureState(img, opt.scale)
	if err != nil {
		return err
	}

	p := synth.NewParams()
	p.SetAutism(opt.autism)
	p.SetNeighbors(opt.neighbors)
	p.SetTries(opt.tries)
	p.SetMagic(opt.magic)
	p.HTile = opt.hTile
	p.VTile = opt.vTile
	if opt.seed != 0 {
		p.Seed = opt.seed
	}
	finish := attachProgress(p, filepath.Base(path))
	res, err := st.Run(ctx, p)
	finish()
	if err != nil {
		return err
	}

	out := OutputPath(path)
	if err := SaveImage(out, res.Image()); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", path, out)
	if opt.preview {
		if perr := PreviewImage(res.Image().ToImage()); perr != nil {
			debugf("preview failed: %v", perr)
		}
	}
	return nil
}

// OutputPath derives the output filename: the input's extension is
// replaced by ".resynth.png", next to the input.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".resynth.png"
}

func optionHelp(name string) string {
	if o, ok := synth.LookupOption(name); ok {
		return o.Description
	}
	return ""
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprint(os.Stderr, "usage: resynth [options] image...\n\n")
	fmt.Fprint(os.Stderr, "Synthesizes a new texture from each input image. The result is written\nnext to the input as {name}.resynth.png.\n\nOptions:\n")
	fs.PrintDefaults()
	fmt.Fprint(os.Stderr, "\nEnvironment (or .env) overrides:\n")
	for _, o := range synth.Options {
		if o.Env != "" {
			fmt.Fprintf(os.Stderr, "  %-18s %s\n", o.Env, o.Description)
		}
	}
}
