package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dormdash/campus-eats/cmd/dormdash/ui"
	"github.com/dormdash/campus-eats/internal/catalog"
	"github.com/dormdash/campus-eats/internal/config"
	"github.com/dormdash/campus-eats/internal/service"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the demo in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		auth, err := service.NewAuthServiceFromConfig(cfg.Auth)
		if err != nil {
			return err
		}

		app := ui.NewApp(
			service.NewNavigator(),
			auth,
			service.NewDashboardService(catalog.NewFixture(time.Now), time.Now),
			service.NewAccountService(cfg.Auth.EmailDomain),
		)

		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()

		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
