package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/task-hub/components/core"
	"github.com/open-control-systems/task-hub/components/storage/stcore"
	"github.com/open-control-systems/task-hub/components/storage/stinfluxdb"
	"github.com/open-control-systems/task-hub/components/system/syscore"
	"github.com/open-control-systems/task-hub/components/task/taskcfg"
	"github.com/open-control-systems/task-hub/components/task/taskcore"
	"github.com/open-control-systems/task-hub/components/task/taskreport"
	"github.com/open-control-systems/task-hub/components/task/taskrun"
)

type runOptions struct {
	configPath   string
	dbPath       string
	logPath      string
	spinCount    int
	influxParams stinfluxdb.DBParams
}

func main() {
	appContext, cancelFunc := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancelFunc()

	if err := newRootCommand(appContext).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(ctx context.Context) *cobra.Command {
	options := &runOptions{}

	cmd := &cobra.Command{
		Use:           "task-hub",
		Short:         "Run a fixed set of periodic tasks to completion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTasks(ctx, options)
		},
	}

	cmd.Flags().StringVar(&options.configPath, "config", "",
		"path to a TOML task-set file, the built-in task set is used if empty")
	cmd.Flags().StringVar(&options.dbPath, "db-path", "",
		"path to a bbolt database file for run reports, persistence is disabled if empty")
	cmd.Flags().StringVar(&options.logPath, "log-path", "",
		"path to a log file, stderr is used if empty")
	cmd.Flags().IntVar(&options.spinCount, "spin-count", taskcore.DefaultSpinCount,
		"number of simulated workload rounds per task iteration")
	cmd.Flags().StringVar(&options.influxParams.URL, "influx-url", "",
		"influxDB URL, result export is disabled if empty")
	cmd.Flags().StringVar(&options.influxParams.Org, "influx-org", "", "influxDB organization")
	cmd.Flags().StringVar(&options.influxParams.Token, "influx-token", "", "influxDB API token")
	cmd.Flags().StringVar(&options.influxParams.Bucket, "influx-bucket", "", "influxDB bucket")

	cmd.AddCommand(newVerifyCommand())

	return cmd
}

func runTasks(ctx context.Context, options *runOptions) error {
	if options.logPath != "" {
		if err := core.SetLogFile(options.logPath); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to setup log file: ", err)
		}
	}

	fanoutCloser := &core.FanoutCloser{}
	defer fanoutCloser.Close()

	specs, err := loadSpecs(options.configPath)
	if err != nil {
		return err
	}

	var store stcore.ReportStore = &stcore.NoopStore{}

	if options.dbPath != "" {
		boltStore, err := stcore.NewBoltStore(options.dbPath, nil)
		if err != nil {
			return err
		}

		fanoutCloser.Add("report-store", boltStore)

		store = boltStore
	}

	runner, err := taskrun.NewRunner(
		ctx,
		specs,
		taskcore.NewSpinWorkload(options.spinCount),
		taskcore.NewLineWriter(os.Stdout),
		&syscore.LocalMonotonicClock{},
	)
	if err != nil {
		return err
	}

	report, err := runner.Run()
	if err != nil {
		return err
	}

	if err := store.Save(report); err != nil {
		core.LogWrn.Printf("main: failed to persist run report: id=%s err=%v\n", report.ID, err)
	}

	if options.influxParams.URL != "" {
		handler := stinfluxdb.NewResultHandler(ctx, fanoutCloser, options.influxParams)

		if err := handler.HandleReport(report); err != nil {
			core.LogWrn.Printf("main: failed to export run report: id=%s err=%v\n",
				report.ID, err)
		}
	}

	return nil
}

func newVerifyCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "verify [output-file]",
		Short: "Check captured run output for the expected records and success marker",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := loadSpecs(configPath)
			if err != nil {
				return err
			}

			input := os.Stdin

			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()

				input = file
			}

			if err := taskreport.Verify(input, specs); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "verify: OK")

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"path to a TOML task-set file, the built-in task set is used if empty")

	return cmd
}

func loadSpecs(configPath string) ([]taskcore.Spec, error) {
	if configPath == "" {
		return taskcore.ReferenceSpecs(), nil
	}

	return taskcfg.LoadSpecs(configPath)
}
