package main

import (
	"context"
	"fmt"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(c *cobra.Command, _ []string) error {
		config, err := getConfigs()
		if err != nil {
			return err
		}
		db, err := openDatabase(config)
		if err != nil {
			return err
		}
		if err = postgres.Migrate(db.WithContext(c.Context())); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintln(c.OutOrStdout(), "Schema is up to date")
		return nil
	},
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage delivery agents",
}

var agentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Grant the agent role to a user",
	RunE: func(c *cobra.Command, _ []string) error {
		userID, err := kernel.ParseID("user", agentUser)
		if err != nil {
			return err
		}

		return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot) error {
			a, err := agent.NewAgent(kernel.NewUUID(), userID)
			if err != nil {
				return err
			}
			if err = app.AgentRepository().Add(ctx, a); err != nil {
				return fmt.Errorf("add agent: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "Agent %s added for user %s\n", a.ID(), userID)
			return nil
		})
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage API sessions",
}

var sessionIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Store a session token for a user",
	RunE: func(c *cobra.Command, _ []string) error {
		userID, err := kernel.ParseID("user", sessionUser)
		if err != nil {
			return err
		}

		return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot) error {
			if err := app.Sessions().Put(ctx, sessionToken, userID, sessionTTL); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Session issued for user %s, expires in %s\n", userID, sessionTTL)
			return nil
		})
	},
}

var sessionRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Delete a session token",
	RunE: func(c *cobra.Command, _ []string) error {
		return withApp(c.Context(), func(ctx context.Context, app *cmd.CompositionRoot) error {
			return app.Sessions().Revoke(ctx, sessionToken)
		})
	},
}

var (
	agentUser    string
	sessionUser  string
	sessionToken string
	sessionTTL   time.Duration
)

func init() {
	agentAddCmd.Flags().StringVar(&agentUser, "user", "", "user id to grant the agent role")
	_ = agentAddCmd.MarkFlagRequired("user")
	agentCmd.AddCommand(agentAddCmd)

	sessionIssueCmd.Flags().StringVar(&sessionUser, "user", "", "user id the token authenticates")
	sessionIssueCmd.Flags().StringVar(&sessionToken, "token", "", "opaque session token")
	sessionIssueCmd.Flags().DurationVar(&sessionTTL, "ttl", 24*time.Hour, "session lifetime")
	_ = sessionIssueCmd.MarkFlagRequired("user")
	_ = sessionIssueCmd.MarkFlagRequired("token")

	sessionRevokeCmd.Flags().StringVar(&sessionToken, "token", "", "session token to delete")
	_ = sessionRevokeCmd.MarkFlagRequired("token")

	sessionCmd.AddCommand(sessionIssueCmd, sessionRevokeCmd)
}

// withApp opens the storage connections and hands a composition root to fn.
func withApp(ctx context.Context, fn func(context.Context, *cmd.CompositionRoot) error) error {
	config, err := getConfigs()
	if err != nil {
		return err
	}
	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	redisClient, err := openRedis(ctx, config)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	app := cmd.NewCompositionRoot(config, db, redisClient, newLogger(config.LogLevel))
	defer app.Close()
	return fn(ctx, app)
}
