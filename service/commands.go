package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"simpleblog/app/repositories"
	"simpleblog/app/routes"
	"simpleblog/config"
	"simpleblog/pkg/logger"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

// RunAppServer loads the configuration and serves the blog API until the
// process receives SIGINT or SIGTERM. It returns the process exit code.
func RunAppServer(stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("config: %v", err))
		return 1
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("logger: %v", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	app, err := NewApp(ctx, cfg)
	if err != nil {
		log.Error("failed to start", "error", err)
		return 1
	}

	printBanner(stdout, cfg)
	if err := app.Run(ctx); err != nil {
		log.Error("server error", "error", err)
		return 1
	}
	return 0
}

func printBanner(w io.Writer, cfg config.Config) {
	host := cfg.HTTP.Host
	if host == "" {
		host = "localhost"
	}
	fmt.Fprintf(w, "%s listening on %s (storage: %s)\n",
		color.New(color.FgGreen, color.Bold).Sprint("simpleblog"),
		color.CyanString("http://%s:%d", host, cfg.HTTP.Port),
		color.YellowString(cfg.StorageType),
	)
}

// PrintRoutes writes one line per path template with the methods it accepts.
func PrintRoutes(w io.Writer) error {
	router := routes.SetupRoutes(repositories.NewMemoryStore())

	var paths []string
	methods := map[string][]string{}
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		ms, err := route.GetMethods()
		if err != nil {
			// Prefix-only routes carry no methods.
			return nil
		}
		if _, seen := methods[path]; !seen {
			paths = append(paths, path)
		}
		methods[path] = append(methods[path], ms...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk routes: %w", err)
	}
	sort.Strings(paths)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, path := range paths {
		fmt.Fprintf(tw, "%s\t%s\n", color.GreenString(strings.Join(methods[path], ",")), path)
	}
	return tw.Flush()
}
