package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// simulationSteps is the number of steps from pending to delivered.
const simulationSteps = 5

var seedShipmentsPerCourier int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo accounts, couriers and shipments",
	Long: `seed creates the demo accounts and courier catalogue and books random
shipments for the business account, advancing each along the tracking
simulator. Accounts and couriers that already exist are left untouched.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, deps appDeps) error {
			return seed(ctx, cmd, deps, seedShipmentsPerCourier)
		})
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedShipmentsPerCourier, "shipments", "n", 20, "shipments to book per new courier")
}

func seed(ctx context.Context, cmd *cobra.Command, deps appDeps, perCourier int) error {
	ok := color.New(color.FgGreen).SprintFunc()
	skip := color.New(color.FgYellow).SprintFunc()
	out := cmd.OutOrStdout()

	accounts := make(map[entity.Role]*entity.User, len(demoAccounts))
	for _, account := range demoAccounts {
		user, created, err := ensureAccount(ctx, deps, account)
		if err != nil {
			return err
		}
		accounts[account.Role] = user
		if created {
			fmt.Fprintf(out, "%s account %s (%s)\n", ok("created"), account.Email, account.Role)
		} else {
			fmt.Fprintf(out, "%s account %s exists\n", skip("skipped"), account.Email)
		}
	}
	admin, business := accounts[entity.RoleAdmin].Actor(), accounts[entity.RoleBusiness].Actor()

	existing, err := deps.Couriers.ListCouriers(ctx, false)
	if err != nil {
		return errors.Wrap(err, "failed to list couriers")
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Code] = true
	}

	var booked, advanced int
	for _, courier := range demoCouriers() {
		if known[courier.Code] {
			fmt.Fprintf(out, "%s courier %s exists\n", skip("skipped"), courier.Code)

			continue
		}
		created, err := deps.Couriers.CreateCourier(ctx, admin, entity.DraftOf(courier))
		if err != nil {
			return errors.Wrapf(err, "failed to create courier %s", courier.Code)
		}
		fmt.Fprintf(out, "%s courier %s\n", ok("created"), created.Name)

		for i := range perCourier {
			shipment, err := deps.Shipments.CreateShipment(ctx, business, demoShipment(i, created.ID, rand.IntN))
			if err != nil {
				return errors.Wrapf(err, "failed to book shipment %d for %s", i+1, created.Code)
			}
			booked++

			for range rand.IntN(simulationSteps + 1) {
				if _, err := deps.Tracking.Simulate(ctx, shipment.TrackingID); err != nil {
					return errors.Wrapf(err, "failed to advance %s", shipment.TrackingID)
				}
				advanced++
			}
		}
	}

	deps.Audit.Record(ctx, &entity.SystemLog{
		Action:      entity.ActionSystem,
		Module:      entity.ModuleSystem,
		Description: "Database seeded with sample data",
		Details:     map[string]any{"shipments": booked, "simulated_steps": advanced},
	})

	fmt.Fprintf(out, "\n%s %d shipments booked, %d tracking steps simulated\n", ok("done:"), booked, advanced)
	fmt.Fprintln(out, "Demo accounts:")
	for _, account := range demoAccounts {
		fmt.Fprintf(out, "  %-9s %s / %s\n", account.Role, account.Email, account.Password)
	}

	return nil
}

// ensureAccount creates the account unless its email is already registered.
func ensureAccount(ctx context.Context, deps appDeps, account demoAccount) (*entity.User, bool, error) {
	user, err := deps.UserRepo.FindByEmail(ctx, account.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, false, errors.Wrapf(err, "failed to look up %s", account.Email)
	}

	hash, err := deps.Hasher.Hash(account.Password)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to hash password")
	}

	now := deps.Clock.Now()
	user = &entity.User{
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: hash,
		Role:         account.Role,
		Company:      account.Company,
		Phone:        account.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := deps.UserRepo.Create(ctx, user); err != nil {
		return nil, false, errors.Wrapf(err, "failed to create %s", account.Email)
	}

	return user, true, nil
}
