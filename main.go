package main

import (
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fileway/fileway/pkg/explorer"
	"github.com/fileway/fileway/pkg/files"
	"github.com/fileway/fileway/pkg/files/ftpfile"
	"github.com/fileway/fileway/pkg/files/httpfile"
	"github.com/fileway/fileway/pkg/files/localfile"
	"github.com/fileway/fileway/pkg/frontend/tviewfe"
	"github.com/fileway/fileway/pkg/fwsettings"
	"github.com/fileway/fileway/pkg/fwstate"
	"github.com/fileway/fileway/pkg/profiling"
)

var osExit = os.Exit
var httpListenAndServe = http.ListenAndServe

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(1)
	}
}

type rootFlags struct {
	configPath string
	debug      bool
	cpuProfile string
	memProfile string
	pprofAddr  string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "fileway [path]",
		Short:         "File manager with pluggable storage backends",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags.debug)

			if flags.pprofAddr != "" {
				go func() {
					if err := httpListenAndServe(flags.pprofAddr, nil); err != nil {
						log.Error().Err(err).Msg("pprof server error")
					}
				}()
			}
			if flags.cpuProfile != "" {
				stopCPUProfiling := profiling.DoCPUProfiling(flags.cpuProfile)
				defer stopCPUProfiling()
			}
			if flags.memProfile != "" {
				writeMemProfile := profiling.DoMemProfiling(flags.memProfile)
				defer writeMemProfile()
			}

			initialPath := ""
			if len(args) > 0 {
				initialPath = args[0]
			}
			return runApp(flags.configPath, initialPath)
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ~/.fileway.yaml)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&flags.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	cmd.Flags().StringVar(&flags.memProfile, "memprofile", "", "write memory profile to `file`")
	cmd.Flags().StringVar(&flags.pprofAddr, "pprof", "", "start pprof http server on `address` (e.g. localhost:6060)")
	return cmd
}

// setupLogging sends logs to a file under the user dir; stderr would
// tear up the terminal UI.
func setupLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = io.Discard
	if dir, err := fwsettings.GetUserDir(); err == nil {
		if err = os.MkdirAll(dir, 0o755); err == nil {
			logPath := filepath.Join(dir, "fileway.log")
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
			}
		}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func runApp(configPath, initialPath string) error {
	if configPath == "" {
		var err error
		if configPath, err = fwsettings.DefaultConfigPath(); err != nil {
			return err
		}
	}
	cfg, err := fwsettings.LoadConfig(configPath)
	if err != nil {
		return err
	}

	registry := setupRegistry(cfg)

	if initialPath == "" {
		initialPath = restoredPath()
	}

	fe := tviewfe.New(cfg)
	e, err := explorer.New(cfg, fe, registry, initialPath)
	if err != nil {
		return err
	}
	return e.Run()
}

// restoredPath picks up where the previous session left off, as long
// as it was browsing the local root mount and the directory is still
// there.
func restoredPath() string {
	state := fwstate.Load()
	if state.Mount != files.RootMountName || state.CurrentPath == "" {
		return ""
	}
	if info, err := os.Stat(state.CurrentPath); err != nil || !info.IsDir() {
		return ""
	}
	return state.CurrentPath
}

// setupRegistry mounts the local root and the backends declared in the
// configuration. A broken mount is skipped, not fatal.
func setupRegistry(cfg fwsettings.Config) *files.Registry {
	registry := files.NewRegistry(localfile.NewStore(""))

	register := func(typeTag string, factory files.Factory) {
		if err := registry.RegisterType(typeTag, factory); err != nil {
			log.Error().Err(err).Str("type", typeTag).Msg("backend registration failed")
		}
	}
	register("local", func(mc files.MountConfig) (files.FileSystem, error) {
		return localfile.NewStore(mc.Path), nil
	})
	register("ftp", func(mc files.MountConfig) (files.FileSystem, error) {
		if mc.Host == "" {
			return nil, fmt.Errorf("ftp mount %q needs a host", mc.Name)
		}
		var options []ftpfile.StoreOption
		if mc.User != "" {
			options = append(options, ftpfile.WithCredentials(mc.User, mc.Password))
		}
		if mc.Path != "" {
			options = append(options, ftpfile.WithRoot(mc.Path))
		}
		return ftpfile.NewStore(mc.Host, options...), nil
	})
	register("http", func(mc files.MountConfig) (files.FileSystem, error) {
		u, err := url.Parse(mc.URL)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("http mount %q has no usable url", mc.Name)
		}
		return httpfile.NewStore(*u), nil
	})

	for _, mc := range cfg.FileSystems {
		if err := registry.MountFromConfig(mc); err != nil {
			log.Warn().Err(err).Str("mount", mc.Name).Msg("skipping configured mount")
		}
	}
	return registry
}
