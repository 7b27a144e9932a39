package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/obs"
	"main/internal/ops"
	"main/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config (empty = built-in defaults)")
	profile := flag.Bool("profile", false, "enable pyroscope profiling")
	pyroscopeAddr := flag.String("pyroscope-addr", "http://localhost:4040", "pyroscope server address")
	seed := flag.Int64("seed", 0, "order-id random seed (0 = time-based)")
	flag.Parse()

	if *profile {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "bond-pipeline",
			ServerAddress:   *pyroscopeAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			logs.Errorf("pyroscope start failed: %+v", err)
			os.Exit(1)
		}
		defer func() { _ = profiler.Stop() }()
	}

	cfg := ops.Default()
	if *configPath != "" {
		loaded, err := ops.Load(*configPath)
		if err != nil {
			logs.Errorf("load config: %+v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		cancel()
	}()

	metrics := obs.NewMetrics()
	graph, err := pipeline.Build(cfg, metrics, rand.New(rand.NewSource(*seed)))
	if err != nil {
		logs.Errorf("build pipeline: %+v", err)
		os.Exit(1)
	}

	logs.Infof("pipeline: %d securities, input %s, output %s",
		cfg.Securities.Len(), cfg.Input, cfg.Output)
	if err := graph.Run(ctx); err != nil {
		logs.Errorf("run pipeline: %+v", err)
		os.Exit(1)
	}

	summary(metrics.Snapshot())
}

func summary(snap obs.Snapshot) {
	for _, stage := range snap.Stages {
		logs.Infof("stage %s: accepted=%d skipped=%d persisted=%d",
			stage.Stage, stage.Accepted, stage.Skipped, stage.Persisted)
	}
	if lat := snap.DispatchLatency; lat.Count > 0 {
		logs.Infof("dispatch: count=%d min=%s avg=%s max=%s",
			lat.Count, lat.Min, lat.Avg, lat.Max)
	}
}
