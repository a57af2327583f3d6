// setupboard is the command-line entrypoint of the ceremony dashboard
// client. It reads trusted-setup ceremony state from the coordinator's
// document store and either prints it or serves it as a JSON API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
	"google.golang.org/api/option"

	"github.com/zkceremonies/setupboard/client"
	"github.com/zkceremonies/setupboard/log"
	"github.com/zkceremonies/setupboard/metrics"
	"github.com/zkceremonies/setupboard/store/firestore"
)

// Set through -ldflags at build time.
var (
	version   = "master"
	gitCommit = "none"
	buildDate = "unknown"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML configuration file",
	}
	projectFlag = &cli.StringFlag{
		Name:  "project",
		Usage: "GCP project id of the ceremony document store",
	}
	credentialsFlag = &cli.StringFlag{
		Name:  "credentials",
		Usage: "path to a service-account credentials file",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "print debug-level log messages",
	}
	metricsFlag = &cli.StringFlag{
		Name:  "metrics",
		Usage: "bind address for the prometheus metrics endpoint",
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "bind address of the dashboard API server",
		Value: ":8080",
	}
	tlsFlag = &cli.BoolFlag{
		Name:  "tls",
		Usage: "serve the API over TLS with a self-signed certificate",
	}
	tlsDirFlag = &cli.StringFlag{
		Name:  "tls-dir",
		Usage: "directory holding (or receiving) the TLS certificate and key",
		Value: ".",
	}
)

func main() {
	app := &cli.App{
		Name:  "setupboard",
		Usage: "read-only dashboard client for zero-knowledge trusted setup ceremonies",
		Flags: []cli.Flag{configFlag, projectFlag, credentialsFlag, verboseFlag, metricsFlag},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list all tracked ceremonies",
				Action: listCmd,
			},
			{
				Name:      "show",
				Usage:     "print the full aggregate of one ceremony",
				ArgsUsage: "<ceremony-id>",
				Action:    showCmd,
			},
			{
				Name:      "avatars",
				Usage:     "print the participant avatar URLs of one ceremony",
				ArgsUsage: "<ceremony-id>",
				Action:    avatarsCmd,
			},
			{
				Name:   "serve",
				Usage:  "serve ceremony aggregates as a JSON API",
				Flags:  []cli.Flag{listenFlag, tlsFlag, tlsDirFlag},
				Action: serveCmd,
			},
		},
	}
	cli.VersionPrinter = func(_ *cli.Context) {
		fmt.Printf("setupboard %v (date %v, commit %v)\n", version, buildDate, gitCommit)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) log.Logger {
	level := log.InfoLevel
	if c.Bool(verboseFlag.Name) {
		level = log.DebugLevel
	}
	return log.New(os.Stderr, level, false)
}

// makeClient wires config, store and metrics into an aggregation client.
// The returned closer shuts the store connection down.
func makeClient(c *cli.Context) (*client.Client, io.Closer, error) {
	l := newLogger(c)
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Project == "" {
		return nil, nil, fmt.Errorf("missing project id: pass --%s or set it in the config file", projectFlag.Name)
	}

	var storeOpts []option.ClientOption
	if cfg.Credentials != "" {
		storeOpts = append(storeOpts, option.WithCredentialsFile(cfg.Credentials))
	}
	s, closer, err := firestore.New(c.Context, l, cfg.Project, storeOpts...)
	if err != nil {
		return nil, nil, err
	}

	opts := []client.Option{client.WithLogger(l)}
	if cfg.Metrics != "" {
		metrics.Start(l, cfg.Metrics)
		opts = append(opts, client.WithPrometheus(metrics.Registry))
	}

	cl, err := client.New(s, opts...)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return cl, closer, nil
}

func listCmd(c *cli.Context) error {
	cl, closer, err := makeClient(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	stop := startSpinner("fetching ceremonies...")
	ceremonies, err := cl.ListCeremonies(c.Context)
	stop()
	if err != nil {
		return err
	}
	return printJSON(ceremonies)
}

func showCmd(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing ceremony id argument")
	}
	cl, closer, err := makeClient(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	stop := startSpinner(fmt.Sprintf("fetching ceremony %s...", id))
	project, err := cl.FetchProject(c.Context, id)
	stop()
	if err != nil {
		return err
	}
	return printJSON(project)
}

func avatarsCmd(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("missing ceremony id argument")
	}
	cl, closer, err := makeClient(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	urls, err := cl.Avatars(c.Context, id)
	if err != nil && urls == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: partial result: %v\n", err)
	}
	return printJSON(urls)
}

func startSpinner(msg string) func() {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = "  " + msg
	s.Writer = os.Stderr
	s.Start()
	return s.Stop
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
