// Command gpuir inspects the MMA shape catalog and the value dialect.
//
// Usage:
//
//	gpuir shapes [-config target.yaml]
//	gpuir offsets -shape M32xN32xK8_B1
//	gpuir permute -shape 2,3,4 -perm 2,0,1
//	gpuir demo [-config target.yaml] [-shape M16xN16xK4_B1]
//	gpuir check [-config target.yaml] [-j 4]
//	gpuir probe
//	gpuir version
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/gpuir/internal/ir"
	"github.com/born-ml/gpuir/internal/layout"
	"github.com/born-ml/gpuir/internal/mma"
	"github.com/born-ml/gpuir/internal/parallel"
	"github.com/born-ml/gpuir/internal/target"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.0.1-dev"

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]

	var err error
	switch cmd {
	case "version":
		fmt.Printf("gpuir %s\n", version)
	case "shapes":
		err = runShapes(args)
	case "offsets":
		err = runOffsets(args)
	case "permute":
		err = runPermute(args)
	case "demo":
		err = runDemo(args)
	case "check":
		err = runCheck(args)
	case "probe":
		err = runProbe()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		klog.Exitf("%s: %v", cmd, err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gpuir [klog flags] <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  shapes     List the MMA shapes enabled for a target\n")
	fmt.Fprintf(os.Stderr, "  offsets    Print the thread offset map of a shape\n")
	fmt.Fprintf(os.Stderr, "  permute    Print a row-major view with permuted dimensions\n")
	fmt.Fprintf(os.Stderr, "  demo       Build, verify and print a GEMM kernel module\n")
	fmt.Fprintf(os.Stderr, "  check      Build and verify the demo kernel for every enabled shape\n")
	fmt.Fprintf(os.Stderr, "  probe      Look for a GPU adapter\n")
	fmt.Fprintf(os.Stderr, "  version    Show version\n")
}

func loadConfig(path string) (target.Config, error) {
	if path == "" {
		return target.DefaultConfig(), nil
	}
	return target.LoadConfig(path)
}

func runShapes(args []string) error {
	fs := flag.NewFlagSet("shapes", flag.ExitOnError)
	configPath := fs.String("config", "", "Target configuration (YAML)")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	fmt.Printf("%-16s %4s %4s %4s %6s %6s %6s\n", "SHAPE", "M", "N", "K", "BLOCKS", "IN/T", "OUT/T")
	for _, s := range cfg.Shapes() {
		d := mma.Describe(s)
		fmt.Printf("%-16s %4d %4d %4d %6d %6d %6d\n", s, d.M(), d.N(), d.K(), d.Blocks(),
			d.InElementsPerThread(cfg.WarpSize), d.OutElementsPerThread(cfg.WarpSize))
	}
	return nil
}

func runOffsets(args []string) error {
	fs := flag.NewFlagSet("offsets", flag.ExitOnError)
	name := fs.String("shape", mma.M32xN32xK8B1.String(), "MMA shape name")
	_ = fs.Parse(args)

	s, err := mma.ParseShape(*name)
	if err != nil {
		return err
	}
	d := mma.Describe(s)
	size := d.OffsetMapSize()
	offsets := d.OffsetMap()
	fmt.Printf("%s: %dx%d\n", s, size[0], size[1])
	for r := 0; r < size[0]; r++ {
		row := offsets[r*size[1] : (r+1)*size[1]]
		fmt.Println(strings.Trim(fmt.Sprint(row), "[]"))
	}
	return nil
}

func runPermute(args []string) error {
	fs := flag.NewFlagSet("permute", flag.ExitOnError)
	shapeFlag := fs.String("shape", "2,3,4", "Comma-separated dimensions")
	permFlag := fs.String("perm", "2,0,1", "Comma-separated permutation")
	_ = fs.Parse(args)

	shape, err := parseInts(*shapeFlag)
	if err != nil {
		return errors.WithMessage(err, "-shape")
	}
	perm, err := parseInts(*permFlag)
	if err != nil {
		return errors.WithMessage(err, "-perm")
	}
	v, err := layout.Permute(layout.Contiguous(layout.Shape(shape)), perm)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	configPath := fs.String("config", "", "Target configuration (YAML)")
	name := fs.String("shape", "", "MMA shape name (default: first enabled shape)")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	shape := cfg.Shapes()[0]
	if *name != "" {
		if shape, err = mma.ParseShape(*name); err != nil {
			return err
		}
	}
	mod, err := buildGemm(cfg, shape)
	if err != nil {
		return err
	}
	if err := ir.Verify(mod.Operation); err != nil {
		return err
	}
	return ir.Print(os.Stdout, mod.Operation)
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Target configuration (YAML)")
	workers := fs.Int("j", parallel.DefaultConfig().NumWorkers, "Number of concurrent checks")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	shapes := cfg.Shapes()
	failed := make([]error, len(shapes))
	_ = parallel.ForEach(len(shapes), func(i int) error {
		mod, err := buildGemm(cfg, shapes[i])
		if err == nil {
			err = ir.Verify(mod.Operation)
		}
		failed[i] = err
		return err
	}, parallel.Config{Enabled: *workers > 1, NumWorkers: *workers})

	bad := 0
	for i, s := range shapes {
		if failed[i] != nil {
			bad++
			fmt.Printf("FAIL %s: %v\n", s, failed[i])
			continue
		}
		fmt.Printf("ok   %s\n", s)
	}
	if bad > 0 {
		return errors.Errorf("%d of %d shapes failed", bad, len(shapes))
	}
	return nil
}

func runProbe() error {
	d, err := target.Probe()
	if err != nil {
		return err
	}
	klog.Infof("GPU adapter available via %s", d.Backend)
	fmt.Println(d.Backend)
	return nil
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = v
	}
	return out, nil
}
