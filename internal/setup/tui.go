// Package setup provides the interactive terminal configuration wizard.
package setup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/crossbot/config"
	"github.com/vadiminshakov/crossbot/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the result
// to the given path.
func RunTUI(outPath string) error {
	var (
		platform        string
		pair            string
		capitalStr      string
		shortWindowStr  string
		longWindowStr   string
		positionSizeStr string
		intervalStr     string
		webAddr         string
		confirm         bool
	)

	// defaults
	pair = "BTC_USDT"
	capitalStr = config.DefaultInitialCapital
	shortWindowStr = strconv.Itoa(config.DefaultShortWindow)
	longWindowStr = strconv.Itoa(config.DefaultLongWindow)
	positionSizeStr = config.DefaultPositionSize
	intervalStr = config.DefaultUpdateInterval.String()
	webAddr = ":8080"

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Paper trading on a moving-average crossover.\n"))

	fmt.Println(stepStyle.Render("STEP 1: PLATFORM"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Market Data Source").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Simulation", "simulate"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Must contain underscore (e.g. BTC_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if !strings.Contains(s, "_") {
						return fmt.Errorf("invalid format: must be BASE_QUOTE (e.g. BTC_USDT)")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: STRATEGY SETTINGS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Starting Capital").
				Description("Quote currency amount (e.g. 10000)").
				Value(&capitalStr).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Short Window").
				Description("Periods for the fast moving average (e.g. 5)").
				Value(&shortWindowStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Long Window").
				Description("Periods for the slow moving average (e.g. 20)").
				Value(&longWindowStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Position Size").
				Description("Fraction of capital per buy, 0-1 (e.g. 0.1)").
				Value(&positionSizeStr).
				Validate(validateFraction),
			huh.NewInput().
				Title("Update Interval").
				Description("Duration string (e.g. 100ms, 5s, 1m)").
				Value(&intervalStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewInput().
				Title("Dashboard Address").
				Description("Listen address for the web UI, empty disables").
				Value(&webAddr),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CROSSBOT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Platform: %s\nPair: %s\nCapital: %s\nWindows: %s/%s\nPosition size: %s\nInterval: %s\n",
		platform, pair, capitalStr, shortWindowStr, longWindowStr, positionSizeStr, intervalStr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	interval, _ := time.ParseDuration(intervalStr)
	capital, _ := decimal.NewFromString(capitalStr)
	size, _ := decimal.NewFromString(positionSizeStr)
	shortWindow, _ := strconv.Atoi(shortWindowStr)
	longWindow, _ := strconv.Atoi(longWindowStr)

	pairElements := strings.SplitN(pair, "_", 2)
	conf := config.Config{
		Platform:       platform,
		Pair:           domain.Pair{From: pairElements[0], To: pairElements[1]},
		InitialCapital: capital,
		ShortWindow:    shortWindow,
		LongWindow:     longWindow,
		PositionSize:   size,
		UpdateInterval: interval,
		WebAddr:        webAddr,
		JournalDir:     config.DefaultJournalDir,
	}

	if err := conf.Write(outPath); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\nConfiguration saved to %s", outPath)))
	return nil
}

func validatePositiveDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be an integer")
	}
	if n < 1 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validateFraction(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThanOrEqual(decimal.Zero) || d.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("must be between 0 and 1")
	}
	return nil
}
