package usecase

import (
	"strings"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

type Action string

const (
	ActionUpdateListing     Action = "listing:update"
	ActionDeleteListing     Action = "listing:delete"
	ActionAddToCart         Action = "cart:add"
	ActionViewOrder         Action = "order:view"
	ActionCancelOrder       Action = "order:cancel"
	ActionUpdateOrderStatus Action = "order:update-status"
	ActionDeleteFeedback    Action = "feedback:delete"
	ActionModerateFeedback  Action = "feedback:moderate"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// Is reports whether id names the caller. Empty identifiers never match.
func (p Principal) Is(id string) bool {
	return sameID(p.UserID, id)
}

func sameID(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && a == b
}

// Policy decides whether a principal may perform an action on a resource.
type Policy struct{}

// Authorize returns nil when allowed and a Forbidden error otherwise.
func (Policy) Authorize(p Principal, resource interface{}, action Action) error {
	switch action {
	case ActionUpdateListing, ActionDeleteListing:
		if product, ok := resource.(*entity.Product); ok && p.Is(product.SellerID) {
			return nil
		}
		verb := "update"
		if action == ActionDeleteListing {
			verb = "delete"
		}
		return errors.Forbidden("Not authorized to "+verb+" this product", nil)

	case ActionAddToCart:
		if product, ok := resource.(*entity.Product); ok && !p.Is(product.SellerID) {
			return nil
		}
		return errors.Forbidden("You cannot add your own product to cart", nil)

	case ActionViewOrder, ActionCancelOrder:
		if order, ok := resource.(*entity.Order); ok && (p.Is(order.BuyerID) || p.Is(order.SellerID)) {
			return nil
		}
		verb := "view"
		if action == ActionCancelOrder {
			verb = "cancel"
		}
		return errors.Forbidden("Not authorized to "+verb+" this order", nil)

	case ActionUpdateOrderStatus:
		if order, ok := resource.(*entity.Order); ok && p.Is(order.SellerID) {
			return nil
		}
		return errors.Forbidden("Only seller can update order status", nil)

	case ActionDeleteFeedback:
		if feedback, ok := resource.(*entity.Feedback); ok && p.Is(feedback.UserID) {
			return nil
		}
		return errors.Forbidden("Not authorized to delete this feedback", nil)

	case ActionModerateFeedback:
		if p.IsAdmin() {
			return nil
		}
		return errors.Forbidden("Admin privileges required", nil)
	}

	return errors.Forbidden("Action not permitted", nil)
}
