package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodorder/internal/db"
	"foodorder/internal/model"
	"foodorder/internal/patch"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gormDB) })
	require.NoError(t, db.Migrate(gormDB))
	return NewStore(gormDB)
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	owner      model.User
	rival      model.User
	customer   model.User
	restaurant model.Restaurant
	item       model.MenuItem
}

func seedFixture(t *testing.T, store Store) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{
		owner:    model.User{Email: "owner@x.io", PasswordHash: "h", Name: "Owner", Role: model.RoleRestaurantOwner},
		rival:    model.User{Email: "rival@x.io", PasswordHash: "h", Name: "Rival", Role: model.RoleRestaurantOwner},
		customer: model.User{Email: "customer@x.io", PasswordHash: "h", Name: "Customer", Role: model.RoleCustomer},
	}
	for _, u := range []*model.User{&f.owner, &f.rival, &f.customer} {
		require.NoError(t, store.Users().Create(ctx, u))
	}

	f.restaurant = model.Restaurant{Name: "Noodle Bar", Cuisine: ptr("Asian"), Rating: ptr(4.0), OwnerID: f.owner.ID}
	require.NoError(t, store.Restaurants().Create(ctx, &f.restaurant))

	f.item = model.MenuItem{RestaurantID: f.restaurant.ID, Name: "Pho", Category: ptr("Soup"), Price: decimal.RequireFromString("11.50"), Available: true}
	require.NoError(t, store.MenuItems().Create(ctx, &f.item))
	return f
}

func placeOrder(t *testing.T, store Store, f fixture, status model.OrderStatus) model.Order {
	t.Helper()

	order := model.Order{
		UserID:          f.customer.ID,
		RestaurantID:    f.restaurant.ID,
		Status:          status,
		TotalAmount:     f.item.Price.Mul(decimal.NewFromInt(2)),
		DeliveryAddress: "1 Main St",
		Items: []model.OrderItem{
			{MenuItemID: f.item.ID, Name: f.item.Name, UnitPrice: f.item.Price, Quantity: 2},
		},
	}
	require.NoError(t, store.Orders().Create(context.Background(), &order))
	return order
}

func testUserPartialUpdate(t *testing.T, store Store) {
	ctx := context.Background()
	f := seedFixture(t, store)

	updated, err := store.Users().Update(ctx, f.customer.ID, patch.Value[string]("name", ptr("Renamed")))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "customer@x.io", updated.Email)
	assert.Equal(t, model.RoleCustomer, updated.Role)
	assert.Empty(t, updated.PasswordHash)

	_, err = store.Users().Update(ctx, f.customer.ID, patch.Value[string]("name", nil))
	assert.ErrorIs(t, err, patch.ErrNoFields)

	_, err = store.Users().Update(ctx, f.customer.ID, patch.Value[string]("email", ptr("owner@x.io")))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	full, err := store.Users().FindByEmail(ctx, "customer@x.io")
	require.NoError(t, err)
	assert.Equal(t, "h", full.PasswordHash)
}

func testUserDelete(t *testing.T, store Store) {
	ctx := context.Background()
	f := seedFixture(t, store)

	err := store.Users().Delete(ctx, 9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = store.Users().Delete(ctx, f.owner.ID)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err))

	require.NoError(t, store.Users().Delete(ctx, f.rival.ID))
	_, err = store.Users().FindByID(ctx, f.rival.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func testRestaurantListAndUpdate(t *testing.T, store Store) {
	ctx := context.Background()
	f := seedFixture(t, store)
	require.NoError(t, store.Restaurants().Create(ctx, &model.Restaurant{Name: "Curry Corner", Cuisine: ptr("Indian"), Description: ptr("Spicy noodles too"), OwnerID: f.rival.ID}))
	require.NoError(t, store.Restaurants().Create(ctx, &model.Restaurant{Name: "Burger Barn", OwnerID: f.rival.ID}))

	tests := []struct {
		name          string
		filter        RestaurantFilter
		expectedNames []string
		expectedTotal int64
	}{
		{"all", RestaurantFilter{Page: Page{Limit: 10}}, []string{"Noodle Bar", "Curry Corner", "Burger Barn"}, 3},
		{"cuisine ignores case", RestaurantFilter{Cuisine: "asian", Page: Page{Limit: 10}}, []string{"Noodle Bar"}, 1},
		{"search matches name or description", RestaurantFilter{Search: "NOODLE", Page: Page{Limit: 10}}, []string{"Noodle Bar", "Curry Corner"}, 2},
		{"window", RestaurantFilter{Page: Page{Limit: 1, Offset: 2}}, []string{"Burger Barn"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := store.Restaurants().List(ctx, tt.filter)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, r := range got {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
			assert.Equal(t, tt.expectedTotal, total)
		})
	}

	before, err := store.Restaurants().FindByID(ctx, f.restaurant.ID)
	require.NoError(t, err)
	after, err := store.Restaurants().Update(ctx, f.restaurant.ID,
		patch.Value[string]("name", ptr("Noodle Palace")),
		patch.Value[float64]("rating", nil),
	)
	require.NoError(t, err)
	assert.Equal(t, "Noodle Palace", after.Name)
	assert.Equal(t, before.Cuisine, after.Cuisine)
	assert.Equal(t, before.Rating, after.Rating)
	assert.Equal(t, before.OwnerID, after.OwnerID)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))

	assert.ErrorIs(t, store.Restaurants().Delete(ctx, 9999), gorm.ErrRecordNotFound)
}

func testMenuItems(t *testing.T, store Store) {
	ctx := context.Background()
	f := seedFixture(t, store)
	hidden := model.MenuItem{RestaurantID: f.restaurant.ID, Name: "Secret Soup", Category: ptr("soup"), Price: decimal.NewFromInt(3), Available: false}
	require.NoError(t, store.MenuItems().Create(ctx, &hidden))

	available, err := store.MenuItems().ListByRestaurant(ctx, f.restaurant.ID, "SOUP", true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Pho", available[0].Name)
	assert.True(t, decimal.RequireFromString("11.5").Equal(available[0].Price))

	all, err := store.MenuItems().ListByRestaurant(ctx, f.restaurant.ID, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := store.MenuItems().FindByIDs(ctx, []uint{f.item.ID, hidden.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := store.MenuItems().FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testOrders(t *testing.T, store Store) {
	ctx := context.Background()
	f := seedFixture(t, store)
	pending := placeOrder(t, store, f, model.OrderStatusPending)
	placeOrder(t, store, f, model.OrderStatusDelivered)

	got, err := store.Orders().FindByID(ctx, pending.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Pho", got.Items[0].Name)
	require.NotNil(t, got.Restaurant)
	assert.Equal(t, f.owner.ID, got.Restaurant.OwnerID)

	status := model.OrderStatusPending
	tests := []struct {
		name          string
		filter        OrderFilter
		expectedTotal int64
	}{
		{"by customer", OrderFilter{UserID: &f.customer.ID, Page: Page{Limit: 10}}, 2},
		{"by owner", OrderFilter{OwnerID: &f.owner.ID, Page: Page{Limit: 10}}, 2},
		{"rival owns nothing ordered", OrderFilter{OwnerID: &f.rival.ID, Page: Page{Limit: 10}}, 0},
		{"by status", OrderFilter{Status: &status, Page: Page{Limit: 10}}, 1},
		{"by restaurant", OrderFilter{RestaurantID: &f.restaurant.ID, Page: Page{Limit: 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, total, err := store.Orders().List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, total)
			assert.LessOrEqual(t, len(orders), tt.filter.Limit)
		})
	}

	updated, err := store.Orders().UpdateStatus(ctx, pending.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)
	assert.True(t, decimal.RequireFromString("23").Equal(updated.TotalAmount))
	assert.Len(t, updated.Items, 1)
}

func testWithTransactionRollsBack(t *testing.T, store Store) {
	ctx := context.Background()
	f := seedFixture(t, store)
	boom := errors.New("boom")

	err := store.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
		locked, err := tx.Restaurants().FindByIDForUpdate(ctx, f.restaurant.ID)
		if err != nil {
			return err
		}
		if _, err := tx.Restaurants().Update(ctx, locked.ID, patch.Value[string]("name", ptr("Renamed"))); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Restaurants().FindByID(ctx, f.restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Noodle Bar", got.Name)
}

var storeScenarios = []struct {
	name string
	run  func(t *testing.T, store Store)
}{
	{"user partial update", testUserPartialUpdate},
	{"user delete", testUserDelete},
	{"restaurant list and update", testRestaurantListAndUpdate},
	{"menu items", testMenuItems},
	{"orders", testOrders},
	{"transaction rollback", testWithTransactionRollsBack},
}

func TestStore_SQLite(t *testing.T) {
	for _, sc := range storeScenarios {
		t.Run(sc.name, func(t *testing.T) {
			sc.run(t, newSQLiteStore(t))
		})
	}
}
