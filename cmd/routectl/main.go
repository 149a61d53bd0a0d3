// Command routectl checks and exercises waypoint route files without a UI.
// Every loader named in the file is backed by the in-memory sim containers.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/i18n"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/sim"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	lang       string
	verbose    bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	waypoint.Close()
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "routectl",
		Short: "Validate, plan and simulate waypoint route files",
		Long: `routectl loads a waypoint route file and runs the router against
in-memory containers, so route definitions can be checked without a UI.

Route sequences are written as identifiers separated by "/", with
options after ";":

  library/game;id=7/options;modalPresentationStyle=formSheet`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", os.Getenv(constants.ConfigEnvVar), "Route file (defaults to $"+constants.ConfigEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&g.lang, "lang", defaultLang(), "Language for error messages")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log router activity to stderr")

	rootCmd.AddCommand(
		validateCmd(g),
		planCmd(g),
		simulateCmd(g),
		versionCmd(),
	)
	return rootCmd
}

func defaultLang() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			// "de_DE.UTF-8" -> "de-DE"
			v, _, _ = strings.Cut(v, ".")
			return strings.ReplaceAll(v, "_", "-")
		}
	}
	return constants.DefaultLanguage
}

func (g *globals) tag() language.Tag {
	return i18n.Match(g.lang)
}

// session is a router over sim containers built from the route file.
type session struct {
	file   *config.File
	window *sim.Window
	router *router.Router
}

func (g *globals) open() (*session, error) {
	if g.configPath == "" {
		return nil, fmt.Errorf("no route file: pass --config or set %s", constants.ConfigEnvVar)
	}
	file, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	w := sim.NewWindow()
	loaders := config.Loaders{}
	for _, s := range file.Segments {
		if s.Loader != "" {
			loaders[s.Loader] = w.Loader()
		}
	}

	options := waypoint.Options{Config: file, Loaders: loaders, Window: w}
	if g.verbose {
		options.LogLevel = "debug"
	}
	r, err := waypoint.New(options)
	if err != nil {
		return nil, err
	}
	return &session{file: file, window: w, router: r}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "routectl %s (%s)\n", version, commit)
		},
	}
}
