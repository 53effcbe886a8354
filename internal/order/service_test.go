package order

import (
	"errors"
	"testing"

	"foodmarket/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore keeps restaurants and menu items in memory. Lookups mirror the
// real store: inactive restaurants and unavailable items report
// gorm.ErrRecordNotFound. The err fields inject infrastructure failures.
type fakeStore struct {
	restaurants map[uint]*model.Restaurant
	items       map[uint]*model.MenuItem
	created     []*model.Order
	nextID      uint

	restaurantErr error
	itemErr       error
	createErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: make(map[uint]*model.Restaurant),
		items:       make(map[uint]*model.MenuItem),
		nextID:      1,
	}
}

func (f *fakeStore) ActiveRestaurant(id uint) (*model.Restaurant, error) {
	if f.restaurantErr != nil {
		return nil, f.restaurantErr
	}
	r, ok := f.restaurants[id]
	if !ok || !r.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeStore) AvailableMenuItem(id uint) (*model.MenuItem, error) {
	if f.itemErr != nil {
		return nil, f.itemErr
	}
	item, ok := f.items[id]
	if !ok || !item.IsAvailable {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeStore) CreateOrder(o *model.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	o.ID = f.nextID
	f.nextID++
	f.created = append(f.created, o)
	return nil
}

func (f *fakeStore) OrderDetail(id uint) (*model.Order, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func seedStore() *fakeStore {
	store := newFakeStore()
	store.restaurants[10] = &model.Restaurant{ID: 10, Name: "Demo Pizza Palace", IsActive: true}
	store.restaurants[11] = &model.Restaurant{ID: 11, Name: "Closed Kitchen", IsActive: false}
	store.items[1] = &model.MenuItem{ID: 1, Name: "Margherita Pizza", Price: 12.99, IsAvailable: true, RestaurantID: 10}
	store.items[2] = &model.MenuItem{ID: 2, Name: "Pepperoni Pizza", Price: 14.99, IsAvailable: true, RestaurantID: 10}
	store.items[3] = &model.MenuItem{ID: 3, Name: "Seasonal Special", Price: 9.99, IsAvailable: false, RestaurantID: 10}
	return store
}

func TestPlace_ComputesTotalFromStoredPrices(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	placed, err := svc.Place(7, 10, []CartLine{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 1},
	}, "no onions")

	require.NoError(t, err)
	assert.InDelta(t, 40.97, placed.Total, 1e-9)
	assert.Equal(t, model.OrderStatusPending, placed.Status)
	assert.Equal(t, uint(7), placed.CustomerID)
	assert.Equal(t, "no onions", placed.Notes)

	require.Len(t, store.created, 1)
	require.Len(t, placed.OrderItems, 2)
	assert.InDelta(t, 12.99, placed.OrderItems[0].Price, 1e-9)
	assert.Equal(t, 2, placed.OrderItems[0].Quantity)
	assert.InDelta(t, 14.99, placed.OrderItems[1].Price, 1e-9)
}

func TestPlace_EmptyCart(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	_, err := svc.Place(7, 10, nil, "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, store.created)
}

func TestPlace_MalformedLine(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	tests := []struct {
		name  string
		lines []CartLine
	}{
		{"zero_quantity", []CartLine{{MenuItemID: 1, Quantity: 0}}},
		{"negative_quantity", []CartLine{{MenuItemID: 1, Quantity: -1}}},
		{"zero_item_id", []CartLine{{MenuItemID: 0, Quantity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Place(7, 10, tt.lines, "")
			assert.ErrorIs(t, err, ErrInvalidLine)
		})
	}
	assert.Empty(t, store.created)
}

func TestPlace_InactiveRestaurant(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	_, err := svc.Place(7, 11, []CartLine{{MenuItemID: 1, Quantity: 1}}, "")

	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.Empty(t, store.created)
}

func TestPlace_MissingRestaurant(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	_, err := svc.Place(7, 999, []CartLine{{MenuItemID: 1, Quantity: 1}}, "")

	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.Empty(t, store.created)
}

func TestPlace_StoreFailureIsNotANotFound(t *testing.T) {
	infraErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	t.Run("restaurant_lookup", func(t *testing.T) {
		store := seedStore()
		store.restaurantErr = infraErr
		svc := NewService(store)

		_, err := svc.Place(7, 10, []CartLine{{MenuItemID: 1, Quantity: 1}}, "")

		assert.ErrorIs(t, err, infraErr)
		assert.NotErrorIs(t, err, ErrRestaurantNotFound)
		assert.Empty(t, store.created)
	})

	t.Run("menu_item_lookup", func(t *testing.T) {
		store := seedStore()
		store.itemErr = infraErr
		svc := NewService(store)

		_, err := svc.Place(7, 10, []CartLine{{MenuItemID: 1, Quantity: 1}}, "")

		assert.ErrorIs(t, err, infraErr)
		var unavailable *UnavailableItemError
		assert.False(t, errors.As(err, &unavailable))
		assert.Empty(t, store.created)
	})

	t.Run("create", func(t *testing.T) {
		store := seedStore()
		store.createErr = infraErr
		svc := NewService(store)

		_, err := svc.Place(7, 10, []CartLine{{MenuItemID: 1, Quantity: 1}}, "")

		assert.ErrorIs(t, err, infraErr)
		assert.Empty(t, store.created)
	})
}

func TestPlace_UnavailableItemRejectsWholeOrder(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	_, err := svc.Place(7, 10, []CartLine{
		{MenuItemID: 1, Quantity: 1},
		{MenuItemID: 3, Quantity: 1},
	}, "")

	var unavailable *UnavailableItemError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, uint(3), unavailable.MenuItemID)
	// All-or-nothing: the valid first line must not have produced an order
	assert.Empty(t, store.created)
}

func TestPlace_PriceSnapshotSurvivesMenuChange(t *testing.T) {
	store := seedStore()
	svc := NewService(store)

	placed, err := svc.Place(7, 10, []CartLine{{MenuItemID: 1, Quantity: 1}}, "")
	require.NoError(t, err)

	// A later menu price change must not alter the stored order line
	store.items[1].Price = 99.99

	reloaded, err := store.OrderDetail(placed.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.99, reloaded.OrderItems[0].Price, 1e-9)
	assert.InDelta(t, 12.99, reloaded.Total, 1e-9)
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []model.OrderItem
		want  float64
	}{
		{"empty", nil, 0},
		{"single_line", []model.OrderItem{{Price: 5.50, Quantity: 3}}, 16.50},
		{"scenario_from_menu", []model.OrderItem{
			{Price: 12.99, Quantity: 2},
			{Price: 14.99, Quantity: 1},
		}, 40.97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeTotal(tt.items), 1e-9)
		})
	}
}
