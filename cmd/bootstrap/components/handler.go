package components

import (
	"restobook/internal/handler"
	"restobook/internal/handler/api"
	"restobook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewTableHandler,
		api.NewBookingHandler,
		api.NewOrderHandler,
		api.NewPaymentHandler,
		api.NewMenuHandler,
		api.NewFeedbackHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	table *api.TableHandler,
	booking *api.BookingHandler,
	order *api.OrderHandler,
	payment *api.PaymentHandler,
	menu *api.MenuHandler,
	feedback *api.FeedbackHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Table:    table,
		Booking:  booking,
		Order:    order,
		Payment:  payment,
		Menu:     menu,
		Feedback: feedback,
	}
}
