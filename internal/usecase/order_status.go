package usecase

import (
	"slices"

	"marketplace/internal/domain/model"
)

// 顧客が直接変更できる遷移
var customerTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusCancelled},
	model.OrderStatusDelivered: {model.OrderStatusCompleted},
}

// セラーの出荷作業による遷移
var fulfillmentTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing},
	model.OrderStatusProcessing: {model.OrderStatusShipped},
	model.OrderStatusShipped:    {model.OrderStatusDelivered},
}

func canTransition(table map[model.OrderStatus][]model.OrderStatus, from, to model.OrderStatus) bool {
	return slices.Contains(table[from], to)
}

func transitionError(from, to model.OrderStatus) *AppError {
	return validationError("cannot change order status from %s to %s", from, to)
}
