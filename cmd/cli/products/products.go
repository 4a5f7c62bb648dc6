package products

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/crucial707/inventory/cmd/cli/client"
	"github.com/crucial707/inventory/cmd/cli/output"
)

type product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Owner       struct {
		ID       string `json:"id"`
		Username string `json:"username,omitempty"`
	} `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ==========================
// Init Products
// ==========================
func InitProducts(rootCmd *cobra.Command) {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage products",
	}

	productsCmd.AddCommand(
		listProductsCmd(),
		getProductCmd(),
		createProductCmd(),
		updateProductCmd(),
		deleteProductCmd(),
	)

	rootCmd.AddCommand(productsCmd)
}

// ==========================
// LIST
// ==========================
func listProductsCmd() *cobra.Command {
	var mine, asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products, or only yours with --mine",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New()
			path := "/api/products"
			if mine {
				var err error
				if c, err = client.Authenticated(); err != nil {
					return err
				}
				path = "/api/products/user/me"
			}

			var list []product
			if _, err := c.Do(cmd.Context(), "GET", path, nil, &list); err != nil {
				return err
			}

			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]interface{}, 0, len(list))
			for _, p := range list {
				rows = append(rows, []interface{}{p.ID, p.Name, formatPrice(p.Price), p.Quantity, ownerLabel(p)})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Price", "Quantity", "Owner"}, rows)
			fmt.Fprintf(cmd.OutOrStdout(), "%d product(s)\n", len(list))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only list products you own (requires sign-in)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getProductCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p product
			if _, err := client.New().Do(cmd.Context(), "GET", "/api/products/"+args[0], nil, &p); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), p)
			}
			printDetail(cmd, p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createProductCmd() *cobra.Command {
	var name, description string
	var price float64
	var quantity int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			payload := map[string]any{
				"name":        name,
				"description": description,
				"price":       price,
			}
			if cmd.Flags().Changed("quantity") {
				payload["quantity"] = quantity
			}

			var p product
			msg, err := c.Do(cmd.Context(), "POST", "/api/products", payload, &p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	cmd.Flags().Float64Var(&price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity in stock (default 0)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateProductCmd() *cobra.Command {
	var name, description string
	var price float64
	var quantity int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a product you own; only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{}
			flags := cmd.Flags()
			if flags.Changed("name") {
				payload["name"] = name
			}
			if flags.Changed("description") {
				payload["description"] = description
			}
			if flags.Changed("price") {
				payload["price"] = price
			}
			if flags.Changed("quantity") {
				payload["quantity"] = quantity
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass at least one of --name, --description, --price, --quantity")
			}

			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var p product
			msg, err := c.Do(cmd.Context(), "PUT", "/api/products/"+args[0], payload, &p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			printDetail(cmd, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().Float64Var(&price, "price", 0, "New price")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "New quantity")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			msg, err := c.Do(cmd.Context(), "DELETE", "/api/products/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func printDetail(cmd *cobra.Command, p product) {
	output.RenderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, [][]interface{}{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Description", p.Description},
		{"Price", formatPrice(p.Price)},
		{"Quantity", p.Quantity},
		{"Owner", ownerLabel(p)},
		{"Created", p.CreatedAt.Local().Format(time.RFC3339)},
		{"Updated", p.UpdatedAt.Local().Format(time.RFC3339)},
	})
}

func ownerLabel(p product) string {
	if p.Owner.Username != "" {
		return p.Owner.Username
	}
	return p.Owner.ID
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
