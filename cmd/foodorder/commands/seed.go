package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"foodorder/internal/authz"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/repository"
	"foodorder/internal/service"
)

var (
	adminEmail    string
	adminPassword string
	withDemo      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and demo data",
	Long: `Create the admin account and, unless --demo=false, a demo owner,
a demo customer and a few restaurants with menus.

Users that already exist are left untouched. Demo restaurants are only
created when the restaurants table is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@foodorder.local", "Admin account email")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "admin123", "Admin account password")
	seedCmd.Flags().BoolVar(&withDemo, "demo", true, "Also create demo users, restaurants and menus")
}

type demoDish struct {
	name     string
	category string
	price    string
}

type demoRestaurant struct {
	name        string
	cuisine     string
	rating      float64
	description string
	address     string
	dishes      []demoDish
}

var demoRestaurants = []demoRestaurant{
	{
		name: "Trattoria Roma", cuisine: "Italian", rating: 4.6,
		description: "Fresh pasta and wood-fired pizza", address: "12 Via Appia",
		dishes: []demoDish{
			{"Margherita", "Pizza", "9.50"},
			{"Tagliatelle al Ragu", "Pasta", "13.00"},
			{"Tiramisu", "Dessert", "6.25"},
		},
	},
	{
		name: "Sakura Sushi", cuisine: "Japanese", rating: 4.4,
		description: "Nigiri, maki and ramen", address: "3 Cherry Lane",
		dishes: []demoDish{
			{"Salmon Nigiri", "Sushi", "5.80"},
			{"Tonkotsu Ramen", "Noodles", "12.90"},
		},
	},
	{
		name: "Taco Loco", cuisine: "Mexican", rating: 4.1,
		description: "Street tacos and burritos", address: "88 Mission St",
		dishes: []demoDish{
			{"Al Pastor Taco", "Tacos", "3.75"},
			{"Carne Asada Burrito", "Burritos", "10.50"},
		},
	},
}

func runSeed(ctx context.Context) error {
	cfg, logger := loadConfig()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := ensureUser(ctx, a.auth, service.RegisterInput{
		Email: adminEmail, Password: adminPassword, Name: "Administrator", Role: model.RoleAdmin,
	}); err != nil {
		return err
	}
	logger.Info("admin ready", slog.String("email", adminEmail))

	if !withDemo {
		return nil
	}

	owner, err := ensureUser(ctx, a.auth, service.RegisterInput{
		Email: "owner@foodorder.local", Password: "owner123", Name: "Demo Owner", Role: model.RoleRestaurantOwner,
	})
	if err != nil {
		return err
	}
	if _, err := ensureUser(ctx, a.auth, service.RegisterInput{
		Email: "customer@foodorder.local", Password: "customer123", Name: "Demo Customer", Role: model.RoleCustomer,
	}); err != nil {
		return err
	}

	_, total, err := a.restaurants.List(ctx, repository.RestaurantFilter{Page: repository.Page{Limit: 1}})
	if err != nil {
		return fmt.Errorf("count restaurants: %w", err)
	}
	if total > 0 {
		logger.Info("restaurants already present, skipping demo menus", slog.Int64("restaurants", total))
		return nil
	}

	caller := authz.Identity{UserID: owner.ID, Email: owner.Email, Role: owner.Role}
	dishes := 0
	for _, demo := range demoRestaurants {
		restaurant, err := a.restaurants.Create(ctx, caller, service.CreateRestaurantInput{
			Name:        demo.name,
			Cuisine:     &demo.cuisine,
			Rating:      &demo.rating,
			Description: &demo.description,
			Address:     &demo.address,
		})
		if err != nil {
			return fmt.Errorf("create restaurant %q: %w", demo.name, err)
		}
		for _, dish := range demo.dishes {
			category := dish.category
			if _, err := a.restaurants.AddMenuItem(ctx, caller, restaurant.ID, service.CreateMenuItemInput{
				Name:     dish.name,
				Category: &category,
				Price:    decimal.RequireFromString(dish.price),
			}); err != nil {
				return fmt.Errorf("add %q to %q: %w", dish.name, demo.name, err)
			}
			dishes++
		}
	}

	logger.Info("seed completed",
		slog.Int("restaurants", len(demoRestaurants)),
		slog.Int("menu_items", dishes),
	)
	return nil
}

// ensureUser registers in or, when the email is taken, logs in with the same
// credentials to fetch the existing account.
func ensureUser(ctx context.Context, auth service.AuthService, in service.RegisterInput) (*model.User, error) {
	user, err := auth.Register(ctx, in)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		return nil, fmt.Errorf("register %s: %w", in.Email, err)
	}

	_, user, err = auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s exists with a different password: %w", in.Email, err)
	}
	return user, nil
}
