package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

type orderMocks struct {
	orders    *MockOrderRepository
	dishes    *MockDishRepository
	guests    *MockGuestRepository
	tables    *MockTableRepository
	snapshots *MockSnapshotRepository
	notifier  *MockNotifier
	tx        *MockTx
}

func (m *orderMocks) assertExpectations(t *testing.T) {
	m.orders.AssertExpectations(t)
	m.dishes.AssertExpectations(t)
	m.guests.AssertExpectations(t)
	m.tables.AssertExpectations(t)
	m.snapshots.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
	m.tx.AssertExpectations(t)
}

func testSettings() Settings {
	return Settings{
		Location:   time.UTC,
		Currency:   "USD",
		PriceScale: 2,
		Now:        func() time.Time { return fixedNow },
	}
}

// newOrderTestService wires the order service to mocks and the real snapshot
// service so frozen snapshots can be inspected.
func newOrderTestService() (OrderService, *orderMocks) {
	m := &orderMocks{
		orders:    new(MockOrderRepository),
		dishes:    new(MockDishRepository),
		guests:    new(MockGuestRepository),
		tables:    new(MockTableRepository),
		snapshots: new(MockSnapshotRepository),
		notifier:  new(MockNotifier),
		tx:        new(MockTx),
	}
	logger := zerolog.Nop()
	settings := testSettings()
	snapshots := NewSnapshotService(m.snapshots, settings, logger)
	svc := NewOrderService(m.orders, m.dishes, m.guests, m.tables, snapshots, m.notifier, settings, logger)
	return svc, m
}

// expectSnapshots assigns sequential IDs starting at firstID to created snapshots.
func expectSnapshots(m *orderMocks, ctx context.Context, firstID int64, times int) {
	next := firstID
	m.snapshots.On("Create", ctx, m.tx, mock.AnythingOfType("*model.DishSnapshot")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.DishSnapshot).ID = next
			next++
		}).
		Return(nil).
		Times(times)
}

func seatedGuest(table int) *model.Guest {
	return &model.Guest{ID: 1, Name: "G", TableNumber: &table}
}

func dish(id int64, name, price string, status model.DishStatus) *model.Dish {
	return &model.Dish{ID: id, Name: name, Price: decimal.RequireFromString(price), Status: status}
}

func TestOrderService_CreateOrders_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderTestService()

	handler := int64(7)
	socketID := "sock-1"
	req := &model.CreateOrdersRequest{
		GuestID: 1,
		Orders: []model.OrderLineRequest{
			{DishID: 10, Quantity: 2},
			{DishID: 11, Quantity: 1},
		},
		OrderHandlerID: &handler,
	}

	m.guests.On("GetByID", ctx, int64(1)).Return(seatedGuest(5), nil)
	m.tables.On("GetByNumber", ctx, 5).Return(&model.Table{Number: 5, Status: model.TableStatusAvailable}, nil)
	m.orders.On("BeginTx", ctx).Return(m.tx, nil)
	m.dishes.On("GetByIDTx", ctx, m.tx, int64(10)).Return(dish(10, "A", "10.00", model.DishStatusAvailable), nil)
	m.dishes.On("GetByIDTx", ctx, m.tx, int64(11)).Return(dish(11, "B", "4.555", model.DishStatusAvailable), nil)
	expectSnapshots(m, ctx, 100, 2)

	var nextOrderID int64 = 500
	m.orders.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.Order).ID = nextOrderID
			nextOrderID++
		}).
		Return(nil).
		Twice()
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("Lookup", ctx, int64(1)).Return(&socketID)
	m.notifier.On("Announce", ctx, model.OrderEventCreated, int64(1), &socketID, mock.AnythingOfType("[]model.Order")).Return()

	result, err := svc.CreateOrders(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Orders, 2)
	require.NotNil(t, result.SocketID)
	assert.Equal(t, "sock-1", *result.SocketID)

	first, second := result.Orders[0], result.Orders[1]
	assert.Equal(t, int64(500), first.ID)
	assert.Equal(t, int64(501), second.ID)
	for _, o := range result.Orders {
		assert.Equal(t, model.OrderStatusPending, o.Status)
		assert.Equal(t, int64(1), o.GuestID)
		require.NotNil(t, o.TableNumber)
		assert.Equal(t, 5, *o.TableNumber)
		assert.Equal(t, &handler, o.OrderHandlerID)
		assert.Equal(t, fixedNow, o.CreatedAt)
		require.NotNil(t, o.DishSnapshot)
		assert.Equal(t, o.DishSnapshotID, o.DishSnapshot.ID)
	}

	assert.Equal(t, int64(100), first.DishSnapshotID)
	assert.Equal(t, int64(10), *first.DishSnapshot.DishID)
	assert.Equal(t, 2, first.Quantity)
	assert.True(t, decimal.RequireFromString("20").Equal(first.Subtotal()))

	assert.Equal(t, int64(101), second.DishSnapshotID)
	assert.Equal(t, int64(11), *second.DishSnapshot.DishID)
	assert.True(t, decimal.RequireFromString("4.56").Equal(second.DishSnapshot.Price))

	assert.True(t, m.tx.committed)
	assert.False(t, m.tx.rolledBack)
	m.assertExpectations(t)
}

func TestOrderService_CreateOrders_ReservedTableAccepted(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderTestService()

	m.guests.On("GetByID", ctx, int64(1)).Return(seatedGuest(3), nil)
	m.tables.On("GetByNumber", ctx, 3).Return(&model.Table{Number: 3, Status: model.TableStatusReserved}, nil)
	m.orders.On("BeginTx", ctx).Return(m.tx, nil)
	m.dishes.On("GetByIDTx", ctx, m.tx, int64(10)).Return(dish(10, "A", "10.00", model.DishStatusAvailable), nil)
	expectSnapshots(m, ctx, 1, 1)
	m.orders.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("Lookup", ctx, int64(1)).Return(nil)
	m.notifier.On("Announce", ctx, model.OrderEventCreated, int64(1), (*string)(nil), mock.Anything).Return()

	result, err := svc.CreateOrders(ctx, &model.CreateOrdersRequest{
		GuestID: 1,
		Orders:  []model.OrderLineRequest{{DishID: 10, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Len(t, result.Orders, 1)
	assert.Nil(t, result.SocketID)
	m.assertExpectations(t)
}

func TestOrderService_CreateOrders_InvalidRequest(t *testing.T) {
	tests := []struct {
		name         string
		req          *model.CreateOrdersRequest
		expectedCode string
	}{
		{
			name:         "Nil request",
			req:          nil,
			expectedCode: model.ErrCodeMissingField,
		},
		{
			name:         "Missing guest",
			req:          &model.CreateOrdersRequest{Orders: []model.OrderLineRequest{{DishID: 1, Quantity: 1}}},
			expectedCode: model.ErrCodeMissingField,
		},
		{
			name:         "No lines",
			req:          &model.CreateOrdersRequest{GuestID: 1},
			expectedCode: model.ErrCodeMissingField,
		},
		{
			name:         "Missing dish",
			req:          &model.CreateOrdersRequest{GuestID: 1, Orders: []model.OrderLineRequest{{Quantity: 1}}},
			expectedCode: model.ErrCodeMissingField,
		},
		{
			name:         "Zero quantity",
			req:          &model.CreateOrdersRequest{GuestID: 1, Orders: []model.OrderLineRequest{{DishID: 1, Quantity: 0}}},
			expectedCode: model.ErrCodeInvalidQuantity,
		},
		{
			name: "Negative quantity on second line",
			req: &model.CreateOrdersRequest{GuestID: 1, Orders: []model.OrderLineRequest{
				{DishID: 1, Quantity: 1},
				{DishID: 2, Quantity: -3},
			}},
			expectedCode: model.ErrCodeInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newOrderTestService()

			result, err := svc.CreateOrders(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, result)
			var domainErr *model.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, model.KindValidation, domainErr.Kind)
			assert.Equal(t, tt.expectedCode, domainErr.Code)
			m.guests.AssertNotCalled(t, "GetByID")
			m.orders.AssertNotCalled(t, "BeginTx")
		})
	}
}

func TestOrderService_CreateOrders_SeatingErrors(t *testing.T) {
	tests := []struct {
		name        string
		guest       *model.Guest
		table       *model.Table
		expectTable bool
		expectedErr error
	}{
		{
			name:        "Guest not found",
			guest:       nil,
			expectedErr: model.ErrGuestNotFound,
		},
		{
			name:        "Guest without table",
			guest:       &model.Guest{ID: 1},
			expectedErr: model.ErrNoTable,
		},
		{
			name:        "Table not found",
			guest:       seatedGuest(9),
			table:       nil,
			expectTable: true,
			expectedErr: model.ErrTableNotFound,
		},
		{
			name:        "Table hidden",
			guest:       seatedGuest(9),
			table:       &model.Table{Number: 9, Status: model.TableStatusHidden},
			expectTable: true,
			expectedErr: model.ErrTableHidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, m := newOrderTestService()

			if tt.guest == nil {
				m.guests.On("GetByID", ctx, int64(1)).Return(nil, nil)
			} else {
				m.guests.On("GetByID", ctx, int64(1)).Return(tt.guest, nil)
			}
			if tt.expectTable {
				if tt.table == nil {
					m.tables.On("GetByNumber", ctx, 9).Return(nil, nil)
				} else {
					m.tables.On("GetByNumber", ctx, 9).Return(tt.table, nil)
				}
			}

			result, err := svc.CreateOrders(ctx, &model.CreateOrdersRequest{
				GuestID: 1,
				Orders:  []model.OrderLineRequest{{DishID: 10, Quantity: 1}},
			})

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
			m.orders.AssertNotCalled(t, "BeginTx")
			m.assertExpectations(t)
		})
	}
}

func TestOrderService_CreateOrders_DishNotOrderable(t *testing.T) {
	tests := []struct {
		name        string
		second      *model.Dish
		expectedErr error
	}{
		{
			name:        "Unavailable dish",
			second:      dish(11, "B", "5.00", model.DishStatusUnavailable),
			expectedErr: model.ErrDishUnavailable,
		},
		{
			name:        "Hidden dish",
			second:      dish(11, "B", "5.00", model.DishStatusHidden),
			expectedErr: model.ErrDishHidden,
		},
		{
			name:        "Dish not found",
			second:      nil,
			expectedErr: model.ErrDishNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, m := newOrderTestService()

			m.guests.On("GetByID", ctx, int64(1)).Return(seatedGuest(5), nil)
			m.tables.On("GetByNumber", ctx, 5).Return(&model.Table{Number: 5, Status: model.TableStatusAvailable}, nil)
			m.orders.On("BeginTx", ctx).Return(m.tx, nil)
			m.dishes.On("GetByIDTx", ctx, m.tx, int64(10)).Return(dish(10, "A", "10.00", model.DishStatusAvailable), nil)
			if tt.second == nil {
				m.dishes.On("GetByIDTx", ctx, m.tx, int64(11)).Return(nil, nil)
			} else {
				m.dishes.On("GetByIDTx", ctx, m.tx, int64(11)).Return(tt.second, nil)
			}
			expectSnapshots(m, ctx, 1, 1)
			m.orders.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil).Once()
			m.tx.On("Rollback", mock.Anything).Return(nil)

			result, err := svc.CreateOrders(ctx, &model.CreateOrdersRequest{
				GuestID: 1,
				Orders: []model.OrderLineRequest{
					{DishID: 10, Quantity: 2},
					{DishID: 11, Quantity: 1},
				},
			})

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
			assert.True(t, m.tx.rolledBack)
			assert.False(t, m.tx.committed)
			if tt.second != nil {
				assert.Contains(t, err.Error(), `"B"`)
			}
			m.notifier.AssertNotCalled(t, "Lookup")
			m.notifier.AssertNotCalled(t, "Announce")
			m.assertExpectations(t)
		})
	}
}

func TestOrderService_CreateOrders_StoreFailures(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name  string
		setup func(ctx context.Context, m *orderMocks)
	}{
		{
			name: "Begin fails",
			setup: func(ctx context.Context, m *orderMocks) {
				m.orders.On("BeginTx", ctx).Return(nil, storeErr)
			},
		},
		{
			name: "Order insert fails",
			setup: func(ctx context.Context, m *orderMocks) {
				m.orders.On("BeginTx", ctx).Return(m.tx, nil)
				m.dishes.On("GetByIDTx", ctx, m.tx, int64(10)).Return(dish(10, "A", "10.00", model.DishStatusAvailable), nil)
				expectSnapshots(m, ctx, 1, 1)
				m.orders.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(storeErr)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
		},
		{
			name: "Commit fails",
			setup: func(ctx context.Context, m *orderMocks) {
				m.orders.On("BeginTx", ctx).Return(m.tx, nil)
				m.dishes.On("GetByIDTx", ctx, m.tx, int64(10)).Return(dish(10, "A", "10.00", model.DishStatusAvailable), nil)
				expectSnapshots(m, ctx, 1, 1)
				m.orders.On("Create", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil)
				m.tx.On("Commit", ctx).Return(storeErr)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, m := newOrderTestService()

			m.guests.On("GetByID", ctx, int64(1)).Return(seatedGuest(5), nil)
			m.tables.On("GetByNumber", ctx, 5).Return(&model.Table{Number: 5, Status: model.TableStatusAvailable}, nil)
			tt.setup(ctx, m)

			result, err := svc.CreateOrders(ctx, &model.CreateOrdersRequest{
				GuestID: 1,
				Orders:  []model.OrderLineRequest{{DishID: 10, Quantity: 1}},
			})

			require.Error(t, err)
			assert.Nil(t, result)
			var domainErr *model.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, model.KindTransaction, domainErr.Kind)
			assert.ErrorIs(t, err, storeErr)
			m.notifier.AssertNotCalled(t, "Announce")
			m.assertExpectations(t)
		})
	}
}

func pendingOrder(dishID *int64) *model.Order {
	table := 5
	return &model.Order{
		ID:             42,
		GuestID:        1,
		DishSnapshotID: 100,
		TableNumber:    &table,
		Quantity:       1,
		Status:         model.OrderStatusPending,
		CreatedAt:      fixedNow.Add(-time.Hour),
		UpdatedAt:      fixedNow.Add(-time.Hour),
		DishSnapshot: &model.DishSnapshot{
			ID:     100,
			DishID: dishID,
			Name:   "A",
			Price:  decimal.RequireFromString("10.00"),
			Status: model.DishStatusAvailable,
		},
	}
}

func TestOrderService_UpdateOrder_SameDish(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderTestService()

	dishID := int64(10)
	handler := int64(3)
	current := pendingOrder(&dishID)

	m.orders.On("BeginTx", ctx).Return(m.tx, nil)
	m.orders.On("GetByIDTx", ctx, m.tx, int64(42)).Return(current, nil)
	m.orders.On("Update", ctx, m.tx, mock.MatchedBy(func(o *model.Order) bool {
		return o.Status == model.OrderStatusProcessing && o.Quantity == 3 && o.DishSnapshotID == 100
	})).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("Lookup", ctx, int64(1)).Return(nil)
	m.notifier.On("Announce", ctx, model.OrderEventUpdated, int64(1), (*string)(nil), mock.AnythingOfType("[]model.Order")).Return()

	result, err := svc.UpdateOrder(ctx, 42, &model.UpdateOrderRequest{
		Status:         model.OrderStatusProcessing,
		DishID:         10,
		Quantity:       3,
		OrderHandlerID: &handler,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Equal(t, model.OrderStatusProcessing, result.Order.Status)
	assert.Equal(t, int64(100), result.Order.DishSnapshotID)
	assert.Equal(t, &handler, result.Order.OrderHandlerID)
	assert.Equal(t, fixedNow, result.Order.UpdatedAt)
	m.snapshots.AssertNotCalled(t, "Create")
	m.dishes.AssertNotCalled(t, "GetByIDTx")
	m.assertExpectations(t)
}

func TestOrderService_UpdateOrder_ChangeDishCreatesSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderTestService()

	dishID := int64(10)
	current := pendingOrder(&dishID)
	oldSnapshot := current.DishSnapshot

	m.orders.On("BeginTx", ctx).Return(m.tx, nil)
	m.orders.On("GetByIDTx", ctx, m.tx, int64(42)).Return(current, nil)
	m.dishes.On("GetByIDTx", ctx, m.tx, int64(11)).Return(dish(11, "B", "7.50", model.DishStatusAvailable), nil)
	expectSnapshots(m, ctx, 200, 1)
	m.orders.On("Update", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("Lookup", ctx, int64(1)).Return(nil)
	m.notifier.On("Announce", ctx, model.OrderEventUpdated, int64(1), (*string)(nil), mock.Anything).Return()

	result, err := svc.UpdateOrder(ctx, 42, &model.UpdateOrderRequest{
		Status:   model.OrderStatusPending,
		DishID:   11,
		Quantity: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(200), result.Order.DishSnapshotID)
	require.NotNil(t, result.Order.DishSnapshot)
	assert.Equal(t, int64(11), *result.Order.DishSnapshot.DishID)
	assert.Equal(t, "B", result.Order.DishSnapshot.Name)
	assert.Equal(t, 5, *result.Order.TableNumber)

	assert.NotSame(t, oldSnapshot, result.Order.DishSnapshot)
	assert.Equal(t, int64(100), oldSnapshot.ID)
	assert.Equal(t, int64(10), *oldSnapshot.DishID)
	m.snapshots.AssertNumberOfCalls(t, "Create", 1)
	m.assertExpectations(t)
}

func TestOrderService_UpdateOrder_DeletedDishRebinds(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderTestService()

	current := pendingOrder(nil)

	m.orders.On("BeginTx", ctx).Return(m.tx, nil)
	m.orders.On("GetByIDTx", ctx, m.tx, int64(42)).Return(current, nil)
	m.dishes.On("GetByIDTx", ctx, m.tx, int64(10)).Return(dish(10, "A", "10.00", model.DishStatusAvailable), nil)
	expectSnapshots(m, ctx, 300, 1)
	m.orders.On("Update", ctx, m.tx, mock.AnythingOfType("*model.Order")).Return(nil)
	m.tx.On("Commit", ctx).Return(nil)
	m.notifier.On("Lookup", ctx, int64(1)).Return(nil)
	m.notifier.On("Announce", ctx, model.OrderEventUpdated, int64(1), (*string)(nil), mock.Anything).Return()

	result, err := svc.UpdateOrder(ctx, 42, &model.UpdateOrderRequest{
		Status:   model.OrderStatusPending,
		DishID:   10,
		Quantity: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(300), result.Order.DishSnapshotID)
	m.assertExpectations(t)
}

func TestOrderService_UpdateOrder_Rejected(t *testing.T) {
	dishID := int64(10)

	tests := []struct {
		name        string
		current     *model.Order
		req         *model.UpdateOrderRequest
		setup       func(ctx context.Context, m *orderMocks)
		expectedErr error
	}{
		{
			name:        "Order not found",
			current:     nil,
			req:         &model.UpdateOrderRequest{Status: model.OrderStatusProcessing, DishID: 10, Quantity: 1},
			expectedErr: model.ErrOrderNotFound,
		},
		{
			name: "Paid order is final",
			current: func() *model.Order {
				o := pendingOrder(&dishID)
				o.Status = model.OrderStatusPaid
				return o
			}(),
			req:         &model.UpdateOrderRequest{Status: model.OrderStatusPaid, DishID: 10, Quantity: 1},
			expectedErr: model.ErrOrderFinalized,
		},
		{
			name: "Backwards transition",
			current: func() *model.Order {
				o := pendingOrder(&dishID)
				o.Status = model.OrderStatusDelivered
				return o
			}(),
			req:         &model.UpdateOrderRequest{Status: model.OrderStatusPending, DishID: 10, Quantity: 1},
			expectedErr: model.ErrInvalidTransition,
		},
		{
			name:    "New dish hidden",
			current: pendingOrder(&dishID),
			req:     &model.UpdateOrderRequest{Status: model.OrderStatusPending, DishID: 11, Quantity: 1},
			setup: func(ctx context.Context, m *orderMocks) {
				m.dishes.On("GetByIDTx", ctx, m.tx, int64(11)).Return(dish(11, "B", "5.00", model.DishStatusHidden), nil)
			},
			expectedErr: model.ErrDishHidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, m := newOrderTestService()

			m.orders.On("BeginTx", ctx).Return(m.tx, nil)
			if tt.current == nil {
				m.orders.On("GetByIDTx", ctx, m.tx, int64(42)).Return(nil, nil)
			} else {
				m.orders.On("GetByIDTx", ctx, m.tx, int64(42)).Return(tt.current, nil)
			}
			if tt.setup != nil {
				tt.setup(ctx, m)
			}
			m.tx.On("Rollback", mock.Anything).Return(nil)

			result, err := svc.UpdateOrder(ctx, 42, tt.req)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, result)
			assert.True(t, m.tx.rolledBack)
			m.orders.AssertNotCalled(t, "Update")
			m.snapshots.AssertNotCalled(t, "Create")
			m.notifier.AssertNotCalled(t, "Announce")
			m.assertExpectations(t)
		})
	}
}

func TestOrderService_UpdateOrder_InvalidRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         *model.UpdateOrderRequest
		expectedErr error
	}{
		{name: "Unknown status", req: &model.UpdateOrderRequest{Status: "Cooking", DishID: 1, Quantity: 1}, expectedErr: model.ErrInvalidStatus},
		{name: "Zero quantity", req: &model.UpdateOrderRequest{Status: model.OrderStatusPending, DishID: 1}, expectedErr: model.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newOrderTestService()

			_, err := svc.UpdateOrder(context.Background(), 42, tt.req)

			assert.ErrorIs(t, err, tt.expectedErr)
			m.orders.AssertNotCalled(t, "BeginTx")
		})
	}
}

func TestOrderService_GetOrders(t *testing.T) {
	ctx := context.Background()
	from := fixedNow.Add(-24 * time.Hour)
	to := fixedNow

	t.Run("Passes bounds to repository", func(t *testing.T) {
		svc, m := newOrderTestService()
		query := model.OrderQuery{FromDate: &from, ToDate: &to}
		expected := []model.Order{{ID: 2}, {ID: 1}}
		m.orders.On("List", ctx, query).Return(expected, nil)

		orders, err := svc.GetOrders(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, expected, orders)
		m.orders.AssertExpectations(t)
	})

	t.Run("Rejects inverted range", func(t *testing.T) {
		svc, m := newOrderTestService()

		orders, err := svc.GetOrders(ctx, model.OrderQuery{FromDate: &to, ToDate: &from})

		assert.ErrorIs(t, err, model.ErrInvalidDateRange)
		assert.Nil(t, orders)
		m.orders.AssertNotCalled(t, "List")
	})

	t.Run("Repository error", func(t *testing.T) {
		svc, m := newOrderTestService()
		m.orders.On("List", ctx, model.OrderQuery{}).Return(nil, errors.New("db down"))

		_, err := svc.GetOrders(ctx, model.OrderQuery{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list orders")
	})
}

func TestOrderService_GetOrderDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		svc, m := newOrderTestService()
		dishID := int64(10)
		m.orders.On("GetByID", ctx, int64(42)).Return(pendingOrder(&dishID), nil)

		order, err := svc.GetOrderDetail(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), order.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		svc, m := newOrderTestService()
		m.orders.On("GetByID", ctx, int64(42)).Return(nil, nil)

		order, err := svc.GetOrderDetail(ctx, 42)

		assert.ErrorIs(t, err, model.ErrOrderNotFound)
		assert.Nil(t, order)
	})
}
