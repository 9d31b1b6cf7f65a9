package persistence

import (
	"horseadmin/domain/event"
	"horseadmin/domain/horse"
	"horseadmin/domain/notification"
	"horseadmin/domain/order"
	"horseadmin/domain/post"
	"horseadmin/domain/product"
	"horseadmin/domain/seller"
	"horseadmin/domain/settings"
	"horseadmin/domain/user"
)

// Models every table the dashboard reads and writes.
func Models() []any {
	return []any{
		&user.Profile{},
		&horse.Horse{},
		&event.Event{},
		&product.Product{},
		&order.Order{},
		&post.Post{},
		&seller.Seller{},
		&notification.Notification{},
		&settings.Settings{},
	}
}
