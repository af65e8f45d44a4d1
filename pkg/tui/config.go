package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jaydubbbbb/train-departures-backend/pkg/config"
)

// RunConfigTUI launches the interactive experience for managing the backend
// configuration.
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Hub Token (Direction Matching)", "hub"),
						huh.NewOption("Set Source Mode", "source"),
						huh.NewOption("Set Scraping Proxy Key", "proxy"),
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Exit", "exit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "exit":
			return nil
		case "hub":
			err = runSetHubTokenTUI(cfg)
		case "source":
			err = runSetSourceModeTUI(cfg)
		case "proxy":
			err = runSetProxyKeyTUI(cfg)
		case "theme":
			err = runSetThemeTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.qpdepartures.json) ---"))
			fmt.Printf("Station: %s\n", cfg.StationName)
			fmt.Printf("Hub Token: %s\n", cfg.HubToken)
			fmt.Printf("Source Mode: %s\n", cfg.SourceMode)
			fmt.Printf("Lines: %d\n", len(cfg.Lines))
			fmt.Printf("Result Limit: %d\n", cfg.Limit)
			fmt.Printf("Listen Address: %s\n", cfg.ListenAddr)
			if cfg.ProxyAPIKey == "" {
				fmt.Println("Proxy Key: Not set")
			} else {
				fmt.Println("Proxy Key: Set")
			}
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func runSetHubTokenTUI(cfg *config.AppConfig) error {
	input := cfg.HubToken

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter the hub token").
				Description("Departures whose destination contains this token count as city-bound.").
				Placeholder("Perth").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if input == "" {
		fmt.Println("Operation cancelled: no token provided.")
		return nil
	}

	cfg.HubToken = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Hub token saved: %s\n", input)))
	return nil
}

func runSetSourceModeTUI(cfg *config.AppConfig) error {
	selected := cfg.SourceMode

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How should departures be fetched?").
				Options(
					huh.NewOption("Scrape the live times pages", config.SourceModeScrape),
					huh.NewOption("Use the internal JSON API", config.SourceModeAPI),
					huh.NewOption("Try the API first, scrape as fallback", config.SourceModeAuto),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.SourceMode = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Source mode changed to: %s\n", selected)))
	return nil
}

func runSetProxyKeyTUI(cfg *config.AppConfig) error {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your scraping proxy API key").
				Description("Used as a fallback when the Transperth site blocks direct fetches.\nLeave empty to disable the proxy.").
				EchoMode(huh.EchoModePassword).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.ProxyAPIKey = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	if input == "" {
		fmt.Println(accentStyle.Render("\n✅ Proxy fallback disabled.\n"))
	} else {
		fmt.Println(accentStyle.Render("\n✅ Proxy key saved.\n"))
	}
	return nil
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Options(
					huh.NewOption("Ocean Blue", "39"),
					huh.NewOption("Sakura Pink", "205"),
					huh.NewOption("Signal Yellow", "220"),
					huh.NewOption("Matrix Green", "42"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.AccentColor = input
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Theme color saved.\n"))
	return nil
}
