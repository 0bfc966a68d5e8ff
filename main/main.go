package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/golbm/analyze"
	"github.com/phil-mansfield/golbm/io"
	"github.com/phil-mansfield/golbm/lattice"
	"github.com/phil-mansfield/golbm/sim"
)

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		run, exampleConfig string
		threads            int
	)
	vars := map[string]*string{
		"Run":           &run,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&run, "Run", "",
		"Configuration file for a [PressureDifference] run.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is "+
			"'PressureDifference'.",
	)
	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of goroutines each phase of a time step is split across.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		con, err := io.ReadPressureDifferenceConfig(run)
		if err != nil {
			log.Fatal(err.Error())
		}
		if threads <= 0 {
			log.Fatalf("'Threads' must be positive, but is %d.", threads)
		}

		fg := setupIO(con)
		runMain(con, threads)
		fg.Close()
	case "ExampleConfig":
		switch exampleConfig {
		case "PressureDifference":
			fmt.Println(io.ExamplePressureDifferenceFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'PressureDifference'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but golbm "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func setupIO(con *io.PressureDifferenceConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	log.Println("Running PressureDifference main.")

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

func runMain(con *io.PressureDifferenceConfig, threads int) {
	width := con.Width()
	geometry, err := io.ReadGeometry(
		con.GeometryFile, con.GeometryFormat, width,
	)
	if err != nil {
		log.Fatal(err.Error())
	}

	simCon := con.SimConfig(threads)
	s, err := sim.New(simCon, geometry)
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf(
		"Domain is %d x %d x %d with porosity %.4g. omega = %.4g, "+
			"%s along %s.", width[0], width[1], width[2],
		analyze.Porosity(s.Lattice().Labels()), simCon.Omega(),
		simCon.Periodicity, io.AxisName(simCon.Axis),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := s.Run(ctx); err != nil {
		log.Fatalf("Stopped after %d steps: %s", s.StepCount(), err.Error())
	}
	log.Printf("Finished %d steps.", s.StepCount())

	flow := io.NewFlowInfo(simCon)
	rho, u := s.Density(), s.Velocity()

	writeFile(con.DensityOutput, func(f *os.File) error {
		return io.WriteDensity(rho, flow, f)
	})
	writeFile(con.VelocityOutput, func(f *os.File) error {
		return io.WriteVelocity(u, flow, f)
	})

	axis := simCon.Axis
	meanU := analyze.MeanVelocity(u, axis)
	log.Printf(
		"Mean velocity is %.6g, maximum speed is %.6g.",
		meanU, analyze.MaxSpeed(u),
	)
	length := float64(width[axis] - 1)
	if k, err := analyze.Permeability(
		meanU, simCon.Nu, simCon.DeltaP, length,
	); err == nil {
		log.Printf("Permeability is %.6g.", k)
	}

	if con.ValidFluxOutput() {
		flux, mean := analyze.SliceFlux(u, axis), analyze.SliceMean(u, axis)
		writeFile(con.FluxOutput, func(f *os.File) error {
			return io.WriteFluxTable(f, axis, flux, mean)
		})
	}

	if con.ValidPlotFile() {
		plotProfile(con.PlotFile, u, axis, width)
	}
}

// plotProfile plots the pressure-axis velocity across the first transverse
// axis, through the center of the domain.
func plotProfile(fname string, u *lattice.VectorField, axis int, width [3]int) {
	along := (axis + 1) % 3
	center := [3]int{width[0] / 2, width[1] / 2, width[2] / 2}
	prof := analyze.Profile(u, axis, along, center)

	analyze.PlotProfile(
		fname, "Velocity profile at the center of the domain",
		io.AxisName(along),
		fmt.Sprintf("$u_%s$", strings.ToLower(io.AxisName(axis))),
		analyze.Coordinates(width[along]), prof,
	)
	plt.Execute()
}

func writeFile(fname string, write func(f *os.File) error) {
	f, err := os.Create(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	if err = write(f); err != nil {
		log.Fatal(err.Error())
	}
	if err = f.Close(); err != nil {
		log.Fatal(err.Error())
	}
}
