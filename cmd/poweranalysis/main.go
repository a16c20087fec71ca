package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sganes21/Dataset-Final-Project/internal/power"
	"github.com/sganes21/Dataset-Final-Project/pkg/contracts"
)

type options struct {
	effect      float64
	alpha       float64
	power       float64
	alternative string
	nobs        float64
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("poweranalysis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.effect, "effect", 0.2, "standardized effect size (Cohen's d)")
	fs.Float64Var(&opts.alpha, "alpha", 0.01, "significance level")
	fs.Float64Var(&opts.power, "power", 0.8, "desired power")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")
	fs.StringVar(&opts.alternative, "alternative", string(power.TwoSided), "two-sided, larger or smaller")
	fs.Float64Var(&opts.nobs, "nobs", 0, "observations per group; when set, report the power instead of the sample size")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(opts options, stdout io.Writer) error {
	alt, err := power.ParseAlternative(opts.alternative)
	if err != nil {
		return err
	}
	if opts.nobs != 0 {
		p, err := power.Power(opts.effect, opts.nobs, opts.alpha, alt)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Power of the test with %v observations per group: %v\n", opts.nobs, p)
		return nil
	}

	n, err := power.SampleSize(opts.effect, opts.alpha, opts.power, alt)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Required sample size from power analysis: %v\n", n)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if opts.version {
		fmt.Println(contracts.GetFullVersionString("poweranalysis"))
		return
	}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "poweranalysis: %v\n", err)
		os.Exit(1)
	}
}
