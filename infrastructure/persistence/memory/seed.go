package memory

import (
	"time"

	"horseadmin/domain/event"
	"horseadmin/domain/horse"
	"horseadmin/domain/notification"
	"horseadmin/domain/order"
	"horseadmin/domain/post"
	"horseadmin/domain/product"
	"horseadmin/domain/resource"
	"horseadmin/domain/seller"
	"horseadmin/domain/user"
)

// DemoUserID owns the seeded orders and posts. `admin token` signs for it by default.
const DemoUserID = "00000000-0000-4000-8000-000000000001"

// seededAt spaces demo rows one hour apart so list order is stable.
func seededAt(i int) resource.Base {
	return resource.Base{CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)}
}

func DemoProfiles() []*user.Profile {
	return []*user.Profile{
		{Base: seededAt(0), Name: "John Doe", Username: "johndoe", Location: "Lexington, KY", Verified: true},
		{Base: seededAt(1), Name: "Jane Smith", Username: "janesmith", Location: "Ocala, FL"},
		{Base: seededAt(2), Name: "Bob Wilson", Username: "bobw", Location: "Aiken, SC", Verified: true},
	}
}

func DemoHorses() []*horse.Horse {
	return []*horse.Horse{
		{Base: seededAt(0), Name: "Thunder", Breed: "Arabian", Age: 5, Gender: "Stallion", Status: []string{"healthy"},
			Diet: horse.Diet{FeedType: "Hay", Supplements: []string{"Biotin"}}},
		{Base: seededAt(1), Name: "Storm", Breed: "Thoroughbred", Age: 7, Gender: "Gelding", Status: []string{"training"}},
		{Base: seededAt(2), Name: "Spirit", Breed: "Mustang", Age: 4, Gender: "Mare", Status: []string{"resting"}},
	}
}

func DemoEvents() []*event.Event {
	return []*event.Event{
		{Base: seededAt(0), Title: "Summer Horse Show", Date: "2024-06-15", Time: "10:00", Location: "Kentucky Horse Park",
			Status: "Upcoming", Type: "Competition", Fees: event.Fees{EntryFee: 50, Currency: "USD"}},
		{Base: seededAt(1), Title: "Vaccination Day", Date: "2024-04-02", Time: "09:00", Location: "Green Meadows Stable",
			Status: "Completed", Type: "Health"},
	}
}

func DemoProducts() []*product.Product {
	return []*product.Product{
		{Base: seededAt(0), Name: "Premium Horse Saddle", Category: "Equipment", Price: 599.99, Stock: 15, Status: "in_stock", Seller: "Horse Equipment Pro"},
		{Base: seededAt(1), Name: "Horse Feed (10kg)", Category: "Food", Price: 49.99, Stock: 50, Status: "low_stock", Seller: "Pet Nutrition Co"},
		{Base: seededAt(2), Name: "Riding Helmet", Category: "Safety", Price: 129.99, Stock: 0, Status: "out_of_stock", Seller: "Safety First Ltd"},
	}
}

func DemoSellers() []*seller.Seller {
	return []*seller.Seller{
		{Base: seededAt(0), BusinessName: "Horse Equipment Pro", ContactPerson: "Jane Smith", Email: "jane@horseequip.com",
			Phone: "+1 234-567-8900", Status: "active", ProductsCount: 45, TotalSales: 125000},
		{Base: seededAt(1), BusinessName: "Pet Nutrition Co", ContactPerson: "Mike Johnson", Email: "mike@petnutrition.com",
			Phone: "+1 234-567-8901", Status: "pending", ProductsCount: 28, TotalSales: 75000},
		{Base: seededAt(2), BusinessName: "Safety First Ltd", ContactPerson: "Sarah Wilson", Email: "sarah@safetyfirst.com",
			Phone: "+1 234-567-8902", Status: "inactive", ProductsCount: 15, TotalSales: 45000},
	}
}

func DemoNotifications() []*notification.Notification {
	return []*notification.Notification{
		{Base: seededAt(0), Title: "Event Reminder", Message: "Summer Horse Show starts tomorrow!", Type: "event",
			Recipients: "all_users", Status: "sent", SentAt: "2024-03-20 10:00", ReadCount: 145},
		{Base: seededAt(1), Title: "New Product Alert", Message: "New saddles in stock", Type: "product",
			Recipients: "subscribers", Status: "scheduled", SentAt: "2024-03-25 09:00"},
		{Base: seededAt(2), Title: "System Update", Message: "Platform maintenance scheduled", Type: "system",
			Recipients: "all_users", Status: "draft"},
	}
}

func DemoOrders() []*order.Order {
	o := &order.Order{
		Base: seededAt(0), OrderNumber: "ORD-1001", CustomerName: "John Doe", Email: "john@example.com",
		Status: "processing", PaymentStatus: "paid", PaymentMethod: "credit_card",
		Subtotal: 599.99, ShippingCost: 25, Tax: 48, TotalAmount: 672.99,
		ShippingAddress: order.ShippingAddress{Street: "1 Paddock Ln", City: "Lexington", State: "KY", PostalCode: "40511", Country: "US"},
		ShippingMethod:  order.ShippingMethod{Carrier: "UPS", Method: "Ground"},
	}
	o.UserID = DemoUserID
	return []*order.Order{o}
}

func DemoPosts() []*post.Post {
	title := "Morning ride"
	p := &post.Post{
		Base: seededAt(0), Title: &title, Content: "Thunder loved the trail today.", Type: "text", Status: "published",
		BackgroundColor: "#ffffff", Tags: []string{"trail", "arabian"},
		UserInfo: post.UserInfo{Name: "Demo Admin"},
	}
	p.UserID = DemoUserID
	return []*post.Post{p}
}
