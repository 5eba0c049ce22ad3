package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fekuna/omnipos-terminal/config"
	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/auth"
	"github.com/fekuna/omnipos-terminal/internal/session"
	"github.com/fekuna/omnipos-terminal/internal/ticket"
	"github.com/fekuna/omnipos-terminal/internal/ticket/serialport"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	categorySvc "github.com/fekuna/omnipos-terminal/internal/category/service"
	categoryStore "github.com/fekuna/omnipos-terminal/internal/category/store"
	customerSvc "github.com/fekuna/omnipos-terminal/internal/customer/service"
	customerStore "github.com/fekuna/omnipos-terminal/internal/customer/store"
	productSvc "github.com/fekuna/omnipos-terminal/internal/product/service"
	productStore "github.com/fekuna/omnipos-terminal/internal/product/store"

	"github.com/fekuna/omnipos-terminal/internal/category"
	"github.com/fekuna/omnipos-terminal/internal/customer"
	"github.com/fekuna/omnipos-terminal/internal/product"
	"github.com/fekuna/omnipos-terminal/internal/sale"
	"github.com/fekuna/omnipos-terminal/internal/user"
)

// app holds everything the commands share, wired once in rootCmd's
// PersistentPreRunE. Stores and services are explicit instances, never
// package globals, so each invocation starts from a clean slate.
type app struct {
	cfg        *config.Config
	logger     logger.ZapLogger
	session    *session.Store
	client     *api.Client
	auth       *auth.Service
	products   product.Store
	categories category.Store
	customers  customer.Store
	sales      *sale.Service
	users      *user.Service
	transport  *serialport.Transport
	printer    *ticket.Printer
}

func newApp() (*app, error) {
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})

	sess, err := session.Open(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(&api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutMS) * time.Millisecond,
	}, appLogger)

	products := productStore.NewStore(productSvc.NewRESTService(client, appLogger), appLogger)
	transport := serialport.New(&serialport.Config{
		PortName:    cfg.Serial.PortName,
		SettleDelay: time.Duration(cfg.Serial.SettleDelayMS) * time.Millisecond,
	}, appLogger)

	return &app{
		cfg:        cfg,
		logger:     appLogger,
		session:    sess,
		client:     client,
		auth:       auth.NewService(client, sess, appLogger),
		products:   products,
		categories: categoryStore.NewStore(categorySvc.NewRESTService(client, appLogger), appLogger),
		customers:  customerStore.NewStore(customerSvc.NewRESTService(client, appLogger), appLogger),
		sales:      sale.NewService(client, products, appLogger),
		users:      user.NewService(client, appLogger),
		transport:  transport,
		printer:    ticket.NewPrinter(client, transport, appLogger),
	}, nil
}

func (a *app) close() {
	if a.session != nil {
		a.session.Close()
	}
	_ = a.logger.Sync()
}

// requireSession restores the persisted login or fails the command.
func (a *app) requireSession() error {
	if !a.auth.IsAuthenticated() {
		return fmt.Errorf("not logged in; run `terminal login` first")
	}
	return nil
}

func main() {
	var a *app

	rootCmd := &cobra.Command{
		Use:           "terminal",
		Short:         "OmniPOS point-of-sale terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}

	rootCmd.AddCommand(
		loginCmd(&a),
		logoutCmd(&a),
		whoamiCmd(&a),
		productsCmd(&a),
		sellCmd(&a),
		printCmd(&a),
		previewCmd(&a),
		downloadCmd(&a),
		portsCmd(&a),
		usersCmd(&a),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
