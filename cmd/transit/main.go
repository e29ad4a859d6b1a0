// Command transit generates a model transit light curve as CSV.
//
// It is a thin caller of the library: flags (optionally overlaid on a
// JSON defaults file) configure a Model, and the evaluated light curve
// is written as time,flux rows.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	transit "github.com/lumen-data/transit.flux"
	"github.com/lumen-data/transit.flux/internal/config"
)

type opts struct {
	configPath string
	out        string

	law         string
	threads     int
	interpolate bool
	nss         int
	exptime     float64

	k             float64
	u1, u2        float64
	contamination float64

	t0, period, a float64
	incDeg        float64
	ecc           float64
	wDeg          float64

	from, to float64
	samples  int
	lerpZ    bool
}

func main() {
	var o opts

	cmd := &cobra.Command{
		Use:   "transit",
		Short: "Generate a transit light curve as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&o.configPath, "config", "", "JSON model defaults file")
	cmd.Flags().StringVar(&o.out, "out", "", "output file (default stdout)")

	cmd.Flags().StringVar(&o.law, "law", "quadratic", "limb-darkening law: uniform or quadratic")
	cmd.Flags().IntVar(&o.threads, "threads", 0, "worker threads (0 = all cores)")
	cmd.Flags().BoolVar(&o.interpolate, "interpolate", false, "evaluate through the interpolation table")
	cmd.Flags().IntVar(&o.nss, "supersampling", 1, "sub-exposures per observation")
	cmd.Flags().Float64Var(&o.exptime, "exptime", transit.DefaultExposureTime, "exposure time in days")

	cmd.Flags().Float64Var(&o.k, "k", 0.1, "planet-to-star radius ratio")
	cmd.Flags().Float64Var(&o.u1, "u1", 0.3, "linear limb-darkening coefficient")
	cmd.Flags().Float64Var(&o.u2, "u2", 0.2, "quadratic limb-darkening coefficient")
	cmd.Flags().Float64Var(&o.contamination, "contamination", 0, "third-light fraction")

	cmd.Flags().Float64Var(&o.t0, "t0", 0, "transit centre epoch, days")
	cmd.Flags().Float64Var(&o.period, "period", 3.5, "orbital period, days")
	cmd.Flags().Float64Var(&o.a, "semimajor", 10, "scaled semi-major axis, stellar radii")
	cmd.Flags().Float64Var(&o.incDeg, "inc", 90, "inclination, degrees")
	cmd.Flags().Float64Var(&o.ecc, "ecc", 0, "eccentricity")
	cmd.Flags().Float64Var(&o.wDeg, "w", 0, "argument of periastron, degrees")

	cmd.Flags().Float64Var(&o.from, "from", -0.15, "start time relative to t0, days")
	cmd.Flags().Float64Var(&o.to, "to", 0.15, "end time relative to t0, days")
	cmd.Flags().IntVar(&o.samples, "samples", 500, "number of observations")
	cmd.Flags().BoolVar(&o.lerpZ, "lerp-z", false, "interpolate separations across sub-exposures")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, o *opts) error {
	cfg := config.Defaults()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = config.Merge(cfg, *loaded)
		applyConfig(o, cmd.Flags().Changed, cfg)
	}

	modelOpts := []transit.Option{
		transit.WithThreads(o.threads),
		transit.WithSupersampling(o.nss, o.exptime),
	}
	switch o.law {
	case "uniform":
		modelOpts = append(modelOpts, transit.WithLaw(transit.Uniform))
	case "quadratic":
		modelOpts = append(modelOpts, transit.WithLaw(transit.Quadratic))
	default:
		return fmt.Errorf("unknown limb-darkening law %q", o.law)
	}
	if o.interpolate {
		modelOpts = append(modelOpts, transit.WithInterpolation())
	}
	if cfg.KMin != nil && cfg.KMax != nil {
		modelOpts = append(modelOpts, transit.WithKRange(*cfg.KMin, *cfg.KMax))
	}
	if cfg.TableKNodes != nil && cfg.TableZNodes != nil {
		modelOpts = append(modelOpts, transit.WithTableResolution(*cfg.TableKNodes, *cfg.TableZNodes))
	}

	m, err := transit.New(modelOpts...)
	if err != nil {
		return err
	}

	if o.samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", o.samples)
	}
	ts := make([]float64, o.samples)
	for i := range ts {
		ts[i] = o.t0 + o.from + (o.to-o.from)*float64(i)/float64(o.samples-1)
	}

	el := transit.Elements{
		T0:  o.t0,
		P:   o.period,
		A:   o.a,
		Inc: o.incDeg * math.Pi / 180,
		Ecc: o.ecc,
		W:   o.wDeg * math.Pi / 180,
	}

	flux, err := m.EvaluateOrbit(ts, o.k, [2]float64{o.u1, o.u2}, el, o.contamination, true, o.lerpZ)
	if err != nil {
		var cerr *transit.ConvergenceError
		if !errors.As(err, &cerr) {
			return err
		}
		log.Printf("warning: %v", cerr)
	}

	w := os.Stdout
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "flux"}); err != nil {
		return err
	}
	for i, tv := range ts {
		rec := []string{
			strconv.FormatFloat(tv, 'g', -1, 64),
			strconv.FormatFloat(flux[i], 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// applyConfig fills options from the config file without beating flags
// the user set explicitly on the command line.
func applyConfig(o *opts, changed func(string) bool, cfg config.ModelConfig) {
	if cfg.Threads != nil && !changed("threads") {
		o.threads = *cfg.Threads
	}
	if cfg.Interpolate != nil && !changed("interpolate") {
		o.interpolate = *cfg.Interpolate
	}
	if cfg.Supersampling != nil && !changed("supersampling") {
		o.nss = *cfg.Supersampling
	}
	if cfg.ExposureTime != nil && !changed("exptime") {
		o.exptime = *cfg.ExposureTime
	}
}
