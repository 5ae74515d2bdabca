package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/component-base/cli/flag"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	"github.com/nexuspointwg/corectl/cmd/app/options"
	"github.com/nexuspointwg/corectl/cmd/app/router"
	"github.com/nexuspointwg/corectl/cmd/app/routes/admin"
	"github.com/nexuspointwg/corectl/cmd/app/routes/auth"
	"github.com/nexuspointwg/corectl/cmd/app/routes/configs"
	"github.com/nexuspointwg/corectl/internal/pkg/routenl"
	"github.com/nexuspointwg/corectl/internal/pkg/wgnl"
	"github.com/nexuspointwg/corectl/internal/service"
	"github.com/nexuspointwg/corectl/internal/store"
	"github.com/nexuspointwg/corectl/internal/store/sqlite"
	"github.com/nexuspointwg/corectl/internal/worker/stats"
	pkgconfig "github.com/nexuspointwg/corectl/pkg/config"
)

const (
	basename = "NexusPointWG"
)

func NewAPICommand(ctx context.Context) *cobra.Command {
	opts := options.NewOptions()
	cmd := &cobra.Command{
		Use:   basename,
		Short: "NexusPointWG is a web server for WireGuard",
		Long:  "NexusPointWG is a web server for WireGuard",
		RunE: func(cmd *cobra.Command, args []string) error {
			// bind command line flags to viper (command line args override config file)
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			if err := viper.Unmarshal(opts); err != nil {
				return err
			}

			// initialize logs after flags are parsed and config is loaded
			logs.InitLogs()
			defer logs.FlushLogs()

			// setup log file rotation if log file is specified
			// This must be called after InitLogs() to ensure the log file setting takes effect
			if opts.Log.LogFile != "" {
				logWriter := &lumberjack.Logger{
					Filename:   opts.Log.LogFile,
					MaxSize:    opts.Log.MaxSize, // megabytes
					MaxBackups: opts.Log.MaxBackups,
					MaxAge:     opts.Log.MaxAge, // days
					Compress:   opts.Log.Compress,
				}
				klog.SetOutput(logWriter)
			}

			// fill in an unset endpoint from this host's own reachable
			// address before validating, so a bare install doesn't have
			// to be told its own address
			if err := opts.WireGuard.ResolveEndpoint(ctx); err != nil {
				return err
			}

			// validate options after flags & config are fully populated
			if errs := opts.Validate(); len(errs) != 0 {
				for _, err := range errs {
					fmt.Fprintln(os.Stderr, "Error:", err)
				}
				os.Exit(1)
			}
			return run(ctx, opts)
		},
	}

	nfs := opts.AddFlags(cmd.Flags())
	flag.SetUsageAndHelpFunc(cmd, *nfs, 80)

	return cmd
}

func run(ctx context.Context, opts *options.Options) error {
	pkgconfig.Init(&pkgconfig.Config{
		InsecureServing: opts.InsecureServing,
		Sqlite:          opts.Sqlite,
		Log:             opts.Log,
		JWT:             opts.JWT,
		WireGuard:       opts.WireGuard,
	})

	storeIns, err := sqlite.GetSqliteFactoryOr(opts.Sqlite)
	if err != nil {
		return err
	}
	store.SetClient(storeIns)

	wg, err := wgnl.Dial()
	if err != nil {
		return err
	}
	rt, err := routenl.Dial()
	if err != nil {
		return err
	}

	svc, err := service.New(ctx, storeIns, wg, rt, opts.WireGuard)
	if err != nil {
		return err
	}

	// Startup reconciliation forces the kernel peer set to match the
	// store before anything else is served.
	if err := svc.Init(ctx); err != nil {
		return err
	}

	statsWG, err := wgnl.Dial()
	if err != nil {
		return err
	}
	worker := stats.New(storeIns, statsWG, opts.WireGuard.Interface)
	go worker.Run(ctx)

	engine := router.New(storeIns, svc, auth.Routes{}, configs.Routes{}, admin.Routes{})

	serve(opts, engine)
	<-ctx.Done()
	os.Exit(0)
	return nil
}

func serve(opts *options.Options, engine *gin.Engine) {
	insecureAddress := fmt.Sprintf("%s:%d", opts.InsecureServing.BindAddress, opts.InsecureServing.BindPort)
	klog.V(1).InfoS("Listening and serving on", "address", insecureAddress)
	go func() {
		klog.Fatal(engine.Run(insecureAddress))
	}()
}
