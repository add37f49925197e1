package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/packeta/internal/checkout"
	"github.com/jask/packeta/internal/config"
	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/store"
)

func main() {
	cartID := flag.String("cart", "", "cart id to attach the pickup point to")
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config path and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *writeConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		fmt.Printf("wrote %s\n", config.Path())
		return
	}

	if *cartID == "" {
		fmt.Fprintln(os.Stderr, "usage: packeta -cart <cart id>")
		os.Exit(2)
	}

	// the terminal belongs to bubbletea, so logs go to a file
	f, err := tea.LogToFile(cfg.Log.Path, "packeta")
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer f.Close()
	lg := logger.New(cfg.Log.Env, f)

	ctx := context.Background()
	client := store.New(cfg.Backend.URL, nil, lg)
	lg.Info("checkout_started", "cart_id", *cartID, "backend_url", client.BaseURL())

	app := checkout.New(ctx, cfg, client, *cartID, nil, lg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	if sel := app.Selection(); sel != nil {
		fmt.Printf("%s\n%s\n", sel.Name, sel.Address())
	}
}
