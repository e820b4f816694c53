package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	"github.com/haeunkim/luthier-crm/internal/infrastructure/database"
	"github.com/haeunkim/luthier-crm/pkg/identifier"
)

var dryRun bool

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "backfill",
		Short: "Assign identifiers to records imported without one",
		Long: "Walks existing records and assigns generated client numbers and " +
			"serial numbers to rows imported from the old ledger without one.",
	}
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")

	rootCmd.AddCommand(clientsCmd(), instrumentsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func clientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "Backfill missing client numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := connect()
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := cmd.Context()
			repo := repository.NewClientRepository(pool)

			total, err := repo.Count(ctx)
			if err != nil {
				return fmt.Errorf("counting clients: %w", err)
			}
			clients, err := repo.List(ctx, total, 0)
			if err != nil {
				return fmt.Errorf("listing clients: %w", err)
			}
			existing, err := repo.ListClientNumbers(ctx)
			if err != nil {
				return fmt.Errorf("listing client numbers: %w", err)
			}

			assigned := 0
			for _, c := range clients {
				if c.ClientNumber != nil {
					continue
				}
				number, err := identifier.NextCode(identifier.ClientPrefix, existing)
				if err != nil {
					return fmt.Errorf("generating client number: %w", err)
				}
				existing = append(existing, number)
				assigned++

				if dryRun {
					fmt.Printf("would assign %s to %s\n", number, c.DisplayName())
					continue
				}

				c.SetClientNumber(number)
				if err := repo.Update(ctx, c); err != nil {
					return fmt.Errorf("updating client %s: %w", c.ID, err)
				}
				fmt.Printf("assigned %s to %s\n", number, c.DisplayName())
			}

			fmt.Printf("%d of %d clients needed a number\n", assigned, total)
			return nil
		},
	}
}

func instrumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "Backfill missing serial numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := connect()
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := cmd.Context()
			repo := repository.NewInstrumentRepository(pool)

			total, err := repo.Count(ctx)
			if err != nil {
				return fmt.Errorf("counting instruments: %w", err)
			}
			instruments, err := repo.List(ctx, total, 0)
			if err != nil {
				return fmt.Errorf("listing instruments: %w", err)
			}
			existing, err := repo.ListSerialNumbers(ctx)
			if err != nil {
				return fmt.Errorf("listing serial numbers: %w", err)
			}

			assigned := 0
			for _, inst := range instruments {
				if inst.SerialNumber != nil {
					continue
				}
				number, err := identifier.NextCode(identifier.PrefixFor(inst.Type), existing)
				if err != nil {
					return fmt.Errorf("generating serial number: %w", err)
				}
				existing = append(existing, number)
				assigned++

				if dryRun {
					fmt.Printf("would assign %s to %s\n", number, inst.Label())
					continue
				}

				inst.SetSerialNumber(number)
				if err := repo.Update(ctx, inst); err != nil {
					return fmt.Errorf("updating instrument %s: %w", inst.ID, err)
				}
				fmt.Printf("assigned %s to %s\n", number, inst.Label())
			}

			fmt.Printf("%d of %d instruments needed a serial number\n", assigned, total)
			return nil
		},
	}
}

func connect() (*pgxpool.Pool, error) {
	cfg := database.NewPostgresConfigFromEnv()
	pool, err := database.NewPostgresPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}
