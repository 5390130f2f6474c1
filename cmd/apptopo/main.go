package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/renato0307/apptopo/internal/app"
	"github.com/renato0307/apptopo/internal/config"
	"github.com/renato0307/apptopo/internal/k8s"
	"github.com/renato0307/apptopo/internal/logging"
	"github.com/renato0307/apptopo/internal/types"
	"github.com/renato0307/apptopo/internal/ui"
)

func main() {
	// Keep client-go output off the terminal
	klog.InitFlags(nil)
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "FATAL")
	flag.Set("v", "0")

	configFlag := flag.String("config", config.DefaultPath(), "Path to the config file")
	sourceFlag := flag.String("source", "", "Topology source (sample, file, hub)")
	fileFlag := flag.String("file", "", "Graph document read by the file source")
	kubeconfigFlag := flag.String("kubeconfig", "", "Path to the hub kubeconfig (default: $HOME/.kube/config)")
	contextFlag := flag.String("context", "", "Hub kubeconfig context")
	appFlag := flag.String("app", "", "Hub application as namespace/name")
	themeFlag := flag.String("theme", "", "Theme to use (charm, dracula, nord, gruvbox, catppuccin)")
	flag.Parse()
	defer klog.Flush()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *sourceFlag, *fileFlag, *kubeconfigFlag, *contextFlag, *appFlag, *themeFlag)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.Logging()); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Shutdown()

	if logging.IsEnabled() {
		sl := logging.Component("client").Slog()
		klog.SetSlogLogger(sl)
		ctrllog.SetLogger(logr.FromSlogHandler(sl.Handler()))
	} else {
		ctrllog.SetLogger(logr.Discard())
	}

	repo, err := newRepository(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to topology source: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()
	logging.Info("starting", "source", repo.Describe())

	appCtx := types.NewAppContext(ui.GetTheme(cfg.UI.Theme), repo)
	appCtx.FetchTimeout = cfg.Source.Timeout
	appCtx.RefreshInterval = cfg.Source.RefreshInterval
	appCtx.Namespaces = cfg.Filters.Namespaces
	appCtx.Clusters = cfg.Filters.Clusters

	p := tea.NewProgram(
		app.NewModel(appCtx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		logging.Error("program failed", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lets command line flags win over the config file and environment
func applyFlags(cfg *config.Config, source, file, kubeconfig, context, application, theme string) {
	if source != "" {
		cfg.Source.Type = source
	}
	if file != "" {
		cfg.Source.File = file
		if source == "" {
			cfg.Source.Type = config.SourceFile
		}
	}
	if kubeconfig != "" {
		cfg.Source.Kubeconfig = kubeconfig
	}
	if context != "" {
		cfg.Source.Context = context
	}
	if application != "" {
		cfg.Source.Application = application
		if source == "" {
			cfg.Source.Type = config.SourceHub
		}
	}
	if theme != "" {
		cfg.UI.Theme = theme
	}
}

func newRepository(cfg *config.Config) (k8s.Repository, error) {
	switch cfg.Source.Type {
	case config.SourceFile:
		return k8s.NewFileRepository(cfg.Source.File), nil
	case config.SourceHub:
		namespace, name, err := cfg.Source.ApplicationRef()
		if err != nil {
			return nil, err
		}
		return k8s.NewHubRepository(k8s.HubOptions{
			Kubeconfig: cfg.Source.Kubeconfig,
			Context:    cfg.Source.Context,
			Namespace:  namespace,
			Name:       name,
		})
	}
	return k8s.NewDummyRepository(), nil
}
