package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-terminal/internal/auth"
	"github.com/fekuna/omnipos-terminal/internal/product/dto"
	"github.com/fekuna/omnipos-terminal/internal/sale"
	"github.com/fekuna/omnipos-terminal/internal/user"
	"github.com/spf13/cobra"
)

func loginCmd(a **app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and persist the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Print("Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}
			u, err := (*a).auth.Login(cmd.Context(), auth.Credentials{
				Username: args[0],
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			(*a).auth.Logout(cmd.Context())
			(*a).products.Reset()
			(*a).categories.Reset()
			(*a).customers.Reset()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			u, ok := (*a).auth.CurrentUser()
			if !ok {
				return fmt.Errorf("no user stored")
			}
			fmt.Printf("%s (%s) role=%s\n", u.Username, u.Name, u.Role)
			return nil
		},
	}
}

func productsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and search the product catalog",
	}

	var (
		page       int
		limit      int
		categoryID string
		force      bool
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products with pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			filters := &dto.ProductFilters{Page: page, Limit: limit, CategoryID: categoryID}
			items, err := (*a).products.Fetch(cmd.Context(), filters, force)
			if err != nil {
				return err
			}
			for _, p := range items {
				fmt.Printf("%-36s  %-30s  %8.2f  stock=%g\n", p.ID, p.Name, p.Price, p.Stock)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "page number")
	listCmd.Flags().IntVar(&limit, "limit", 25, "page size")
	listCmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	listCmd.Flags().BoolVar(&force, "force", false, "bypass the cache")

	var topLimit int
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Show the top selling products",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			items, err := (*a).products.FetchTopSelling(cmd.Context(), topLimit, false)
			if err != nil {
				return err
			}
			for _, p := range items {
				fmt.Printf("%-36s  %-30s  %8.2f\n", p.ID, p.Name, p.Price)
			}
			return nil
		},
	}
	topCmd.Flags().IntVar(&topLimit, "limit", 10, "how many products")

	var searchPage int
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Incrementally search products by name, description or barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			items, err := (*a).products.Search(cmd.Context(), args[0], searchPage, false)
			if err != nil {
				return err
			}
			for _, p := range items {
				fmt.Printf("%-36s  %-30s  %8.2f  stock=%g\n", p.ID, p.Name, p.Price, p.Stock)
			}
			if (*a).products.HasMore() {
				fmt.Println("… more results available")
			}
			return nil
		},
	}
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")

	cmd.AddCommand(listCmd, topCmd, searchCmd)
	return cmd
}

// parseItems turns "productID=qty" pairs into sale items.
func parseItems(specs []string) ([]sale.ItemInput, error) {
	items := make([]sale.ItemInput, 0, len(specs))
	for _, spec := range specs {
		id, qtyStr, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid item %q, expected productID=quantity", spec)
		}
		qty, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q", spec)
		}
		items = append(items, sale.ItemInput{ProductID: id, Quantity: qty})
	}
	return items, nil
}

func sellCmd(a **app) *cobra.Command {
	var (
		itemSpecs  []string
		customerID string
		payment    string
		discount   float64
		noPrint    bool
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Register a sale and print its ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			items, err := parseItems(itemSpecs)
			if err != nil {
				return err
			}
			created, err := (*a).sales.Create(cmd.Context(), &sale.CreateSaleInput{
				CustomerID:    customerID,
				Items:         items,
				Discount:      discount,
				PaymentMethod: payment,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Sale %s registered, total %.2f\n", created.ID, created.Total)

			if noPrint {
				return nil
			}
			result, err := (*a).printer.PrintTicket(cmd.Context(), created.ID)
			if err != nil {
				// The sale went through; a printing failure is reported
				// but does not undo it.
				return fmt.Errorf("sale registered but ticket failed: %w", err)
			}
			fmt.Printf("Ticket printed (%s)\n", result.Method)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&itemSpecs, "item", "i", nil, "sale line as productID=quantity (repeatable)")
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id")
	cmd.Flags().StringVar(&payment, "payment", "cash", "payment method")
	cmd.Flags().Float64Var(&discount, "discount", 0, "discount amount")
	cmd.Flags().BoolVar(&noPrint, "no-print", false, "skip ticket printing")
	return cmd
}

func printCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "print <saleID>",
		Short: "Print (or reprint) the ticket for a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			result, err := (*a).printer.PrintTicket(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Ticket printed (%s)\n", result.Method)
			return nil
		},
	}
}

func previewCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <saleID>",
		Short: "Render the ticket's printable text without printing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			return (*a).printer.PreviewTicket(cmd.Context(), args[0], os.Stdout)
		},
	}
}

func downloadCmd(a **app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <saleID>",
		Short: "Save the ticket as a standalone HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			s, err := (*a).sales.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if dir == "" {
				dir = (*a).cfg.Ticket.DownloadDir
			}
			path, err := (*a).printer.DownloadTicket(s, (*a).cfg.Business, (*a).cfg.Ticket, dir)
			if err != nil {
				return err
			}
			fmt.Println("Saved", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "target directory (defaults to TICKET_DOWNLOAD_DIR)")
	return cmd
}

func usersCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer terminal users",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			users, err := (*a).users.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				state := "active"
				if !u.Active {
					state = "inactive"
				}
				fmt.Printf("%-36s  %-20s  %-10s  %s\n", u.ID, u.Username, u.Role, state)
			}
			return nil
		},
	}

	var (
		name     string
		email    string
		password string
		role     string
	)
	createCmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			u, err := (*a).users.Create(cmd.Context(), &user.CreateUserInput{
				Name:     name,
				Username: args[0],
				Email:    email,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Printf("User %s created (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "full name")
	createCmd.Flags().StringVar(&email, "email", "", "email address")
	createCmd.Flags().StringVarP(&password, "password", "p", "", "initial password")
	createCmd.Flags().StringVar(&role, "role", "cashier", "role (admin, manager, cashier)")

	var (
		updName     string
		updEmail    string
		updPassword string
		updRole     string
		inactive    bool
	)
	updateCmd := &cobra.Command{
		Use:   "update <userID>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			err := (*a).users.Update(cmd.Context(), args[0], &user.UpdateUserInput{
				Name:     updName,
				Email:    updEmail,
				Password: updPassword,
				Role:     updRole,
				Active:   !inactive,
			})
			if err != nil {
				return err
			}
			fmt.Println("User updated")
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updName, "name", "", "full name")
	updateCmd.Flags().StringVar(&updEmail, "email", "", "email address")
	updateCmd.Flags().StringVarP(&updPassword, "password", "p", "", "new password")
	updateCmd.Flags().StringVar(&updRole, "role", "cashier", "role (admin, manager, cashier)")
	updateCmd.Flags().BoolVar(&inactive, "inactive", false, "deactivate the user")

	deleteCmd := &cobra.Command{
		Use:   "delete <userID>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).requireSession(); err != nil {
				return err
			}
			if err := (*a).users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("User deleted")
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}

func portsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports and show the selected one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := (*a).transport.Ports()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Println("No serial ports detected")
				return nil
			}
			selected := (*a).transport.PortName()
			for _, name := range ports {
				marker := " "
				if name == selected {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
			return nil
		},
	}
}
