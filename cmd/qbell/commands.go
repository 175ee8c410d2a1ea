package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qbell"
	"github.com/theapemachine/qbell/server"
)

type rootOptions struct {
	configFile string
	qasm       bool
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "qbell",
		Short: "Measure a Bell pair on a state-vector simulator",
		Long: `qbell prepares two qubits in the Bell state (H on q0, CNOT q0 -> q1),
measures both over 1024 shots and prints the outcome counts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.Flags().BoolVar(&opts.qasm, "qasm", false, "print the circuit as OpenQASM 2.0 instead of running it")

	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /quantum-measurement over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	serveCmd.Flags().Int("port", 5000, "listen port")
	serveCmd.Flags().Bool("debug", false, "run gin in debug mode")
	serveCmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address")

	_ = opts.v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = opts.v.BindPFlag("debug", serveCmd.Flags().Lookup("debug"))
	_ = opts.v.BindPFlag("metrics_addr", serveCmd.Flags().Lookup("metrics-addr"))

	return serveCmd
}

func loadConfig(opts *rootOptions) (*qbell.Config, error) {
	cfg, err := qbell.LoadConfig(opts.v, opts.configFile)
	if err != nil {
		return nil, err
	}

	cfg.ApplyLogLevel()
	return cfg, nil
}

func newService(cfg *qbell.Config, reg prometheus.Registerer) *qbell.Service {
	return qbell.NewService(
		qbell.NewRegistry(cfg.SimulatorOptions()...),
		qbell.WithBackend(cfg.Backend),
		qbell.WithMetrics(qbell.NewMetrics(reg)),
	)
}

func runMeasure(cmd *cobra.Command, opts *rootOptions) error {
	if opts.qasm {
		_, err := fmt.Fprint(cmd.OutOrStdout(), qbell.BellCircuit().QASM())
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	svc := newService(cfg, prometheus.NewRegistry())

	counts, err := svc.MeasureBellPair(cmd.Context())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), counts.String())
	return err
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := newService(cfg, reg)
	srv := server.New(cfg, svc, reg)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errnie.Info("serving %s on %s (backend %s)", server.MeasurementPath, cfg.Addr(), cfg.Backend)

	return srv.Run(ctx)
}
