package handler

import (
	"context"
	"time"

	"restaurant-pos/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrders(ctx context.Context, req *model.CreateOrdersRequest) (*model.OrdersResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrdersResult), args.Error(1)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, id int64, req *model.UpdateOrderRequest) (*model.OrderResult, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResult), args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, query model.OrderQuery) ([]model.Order, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockPaymentService is a mock implementation of PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) PayOrders(ctx context.Context, req *model.PayOrdersRequest) (*model.OrdersResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrdersResult), args.Error(1)
}

// MockDishService is a mock implementation of DishService.
type MockDishService struct {
	mock.Mock
}

func (m *MockDishService) List(ctx context.Context, query model.DishListQuery) (*model.DishPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishPage), args.Error(1)
}

func (m *MockDishService) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dish), args.Error(1)
}

// MockIndicatorService is a mock implementation of IndicatorService.
type MockIndicatorService struct {
	mock.Mock
}

func (m *MockIndicatorService) Dashboard(ctx context.Context, from, to time.Time) (*model.DashboardIndicator, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardIndicator), args.Error(1)
}
