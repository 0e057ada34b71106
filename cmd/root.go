// Package cmd implements the command line interface.
package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/hallway-chat/hallway/internal/app"
	"github.com/hallway-chat/hallway/internal/bus"
	"github.com/hallway-chat/hallway/internal/config"
	"github.com/hallway-chat/hallway/internal/identity"
	"github.com/hallway-chat/hallway/internal/logger"
	"github.com/hallway-chat/hallway/internal/upload"
)

var (
	debugMode             bool
	quietMode             bool
	serverAddr            string
	uploadURL             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "hallway",
	Short: "Terminal client for hallway chat servers",
	Long: `Hallway is a terminal chat client. It keeps a live message log, shows who
is online per channel, and sends files through the server's upload endpoint.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVarP(&serverAddr, "server", "s", "", "Server address (host:port), overrides config")
	rootCmd.Flags().StringVarP(&uploadURL, "upload-url", "u", "", "Upload endpoint URL, overrides the default derived from the server address")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("hallway %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("hallway %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if serverAddr != "" {
		cfg.SetServer(serverAddr)
	}

	defer logger.Close()

	// The identity prompt blocks before the reactive system starts
	name, err := identity.Resolve(cfg, identity.TerminalPrompt())
	if err != nil {
		return fmt.Errorf("error resolving identity: %w", err)
	}

	uploader := &upload.HTTPTransport{
		URL: resolveUploadURL(cfg),
	}

	// The listener's send is bound to the program created below; the client
	// only starts delivering events once Run is called, after p exists
	var p *tea.Program
	client := bus.NewClient(
		bus.TCPDialer{Addr: cfg.GetServer()},
		app.NewListener(func(msg tea.Msg) { p.Send(msg) }),
		bus.ClientConfig{Name: name, Channels: cfg.GetChannels()},
	)
	defer client.Close()

	m := app.New(cfg, name, version, client, uploader)
	p = tea.NewProgram(m)

	go client.Run()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func resolveUploadURL(cfg *config.Config) string {
	if uploadURL != "" {
		return uploadURL
	}
	return "http://" + cfg.GetServer() + "/upload"
}
