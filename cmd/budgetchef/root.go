package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/budget-chef/backend/internal/client"
	"github.com/pageza/budget-chef/backend/internal/tui"
)

const defaultServer = "http://localhost:5000"

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "budgetchef",
		Short:         "Find cheap recipes for what is already in your pantry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.budgetchef.yaml)")
	root.PersistentFlags().String("server", defaultServer, "Budget-Chef API base URL")
	root.PersistentFlags().String("token", "", "login token for authenticated calls")
	_ = v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("token", root.PersistentFlags().Lookup("token"))

	newClient := func() *client.Client {
		return client.New(v.GetString("server"), client.WithToken(v.GetString("token")))
	}

	root.AddCommand(
		generateCmd(newClient),
		recipeCmd(newClient),
		saveCmd(newClient),
		savedCmd(newClient),
		registerCmd(newClient),
		loginCmd(newClient),
		meCmd(newClient),
		pantryCmd(newClient),
	)
	return root
}

// loadConfig merges flags, BUDGETCHEF_* env vars and an optional config file
func loadConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("budgetchef")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".budgetchef")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func generateCmd(newClient func() *client.Client) *cobra.Command {
	var ingredients, preferences []string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Suggest recipes for the given ingredients",
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := newClient().Generate(cmd.Context(), splitList(append(ingredients, args...)), splitList(preferences))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recipes)
		},
	}
	cmd.Flags().StringSliceVarP(&ingredients, "ingredients", "i", nil, "pantry ingredients")
	cmd.Flags().StringSliceVarP(&preferences, "preferences", "p", nil, "dietary preferences")
	return cmd
}

func recipeCmd(newClient func() *client.Client) *cobra.Command {
	var pantryItems []string
	cmd := &cobra.Command{
		Use:   "recipe <id>",
		Short: "Show a recipe, marking what you already have",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := newClient().Recipe(cmd.Context(), args[0], splitList(pantryItems))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), detail)
		},
	}
	cmd.Flags().StringSliceVar(&pantryItems, "pantry", nil, "ingredients you have")
	return cmd
}

func saveCmd(newClient func() *client.Client) *cobra.Command {
	var userID, title string
	cmd := &cobra.Command{
		Use:   "save <recipe-id>",
		Short: "Save a recipe to a user's list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Save(cmd.Context(), userID, args[0], title)
			if client.IsConflict(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "Recipe is already saved.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&title, "title", "", "recipe title")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func savedCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "saved <user-id>",
		Short: "List a user's saved recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := newClient().Saved(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), saved)
		},
	}
}

func registerCmd(newClient func() *client.Client) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func loginCmd(newClient func() *client.Client) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a token (export it as BUDGETCHEF_TOKEN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func meCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := newClient().Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

func pantryCmd(newClient func() *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "pantry",
		Short: "Build a pantry interactively and generate recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			_, err := tea.NewProgram(tui.New(c.Generate)).Run()
			return err
		},
	}
}
