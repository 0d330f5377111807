package main

import (
	"errors"
	"fmt"

	"github.com/Spok95/car-factory/internal/config"
	"github.com/Spok95/car-factory/internal/infra/db"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	open := func() (*db.Migrator, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		if cfg.Storage.Driver != config.DriverPostgres {
			return nil, errors.New("migrations need storage.driver=postgres")
		}
		return db.OpenMigrator(cfg.Postgres.DSN)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			if err := m.Up(cmd.Context()); err != nil {
				return err
			}
			v, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}
			color.Green("schema is at version %d", v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			if err := m.Down(cmd.Context()); err != nil {
				return err
			}
			v, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}
			color.Yellow("rolled back, schema is at version %d", v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := open()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			states, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			applied := color.New(color.FgGreen).SprintFunc()
			pending := color.New(color.FgYellow).SprintFunc()
			for _, s := range states {
				mark := applied("applied")
				if !s.Applied {
					mark = pending("pending")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%05d  %-40s %s\n", s.Version, s.Name, mark)
			}
			return nil
		},
	})
	return cmd
}
