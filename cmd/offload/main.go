package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/seantiz/offload/internal/api"
	"github.com/seantiz/offload/internal/config"
	"github.com/seantiz/offload/internal/device"
	"github.com/seantiz/offload/internal/engine"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	// One thread beyond the worker count, so the bridge's dedicated
	// submission goroutine does not contend with the compute fan-out.
	runtime.GOMAXPROCS(cfg.Workers + 1)

	logger.Info("offload: starting",
		"array_size", cfg.ArraySize,
		"ratio", cfg.Ratio,
		"alpha", cfg.Alpha,
		"workers", cfg.Workers,
		"device", cfg.Device,
	)

	registry := device.NewRegistry()
	registry.Register(device.SimName, device.NewSim())
	defer registry.Close()

	eng := engine.New(cfg, registry, logger)

	res, err := eng.Run(context.Background())
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	report := res.Report
	logger.Info("run complete",
		"run_id", report.ID,
		"verdict", report.Verdict,
		"device_range", report.DeviceRange.String(),
		"cpu_range", report.CPURange.String(),
		"cpu_ms", report.CPUMS,
		"device_ms", report.DeviceMS,
		"duration_ms", report.DurationMS,
	)

	if cfg.Verbose {
		printArr("c_array: ", res.C)
		printArr("c_gold : ", res.Gold)
	}

	if !report.Correct() {
		os.Exit(1)
	}

	// Keep serving diagnostics until interrupted when a listen address is
	// configured; a plain run exits immediately.
	if cfg.ListenAddr != "" {
		srv := api.NewServer(cfg.ListenAddr, registry, logger)
		srv.SetReport(report)
		if err := srv.Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

func printArr(label string, arr []float64) {
	fmt.Print(label)
	for _, v := range arr {
		fmt.Printf("%g ", v)
	}
	fmt.Println()
}
