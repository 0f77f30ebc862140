// Package notify carries data-change notifications from the write path to shop staff.
// Services build an Event after their transaction commits and hand it to a Notifier;
// the Dispatcher turns events into emails.
package notify

import (
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// Kind identifies what happened.
type Kind string

const (
	KindOrderCreated    Kind = "order.created"
	KindProductCreated  Kind = "product.created"
	KindProductUpdated  Kind = "product.updated"
	KindProductDeleted  Kind = "product.deleted"
	KindCategoryCreated Kind = "category.created"
	KindCategoryUpdated Kind = "category.updated"
	KindCategoryDeleted Kind = "category.deleted"
	KindCustomerCreated Kind = "customer.created"
	KindCustomerUpdated Kind = "customer.updated"
	KindCustomerDeleted Kind = "customer.deleted"
	KindUserRegistered  Kind = "user.registered"
)

// Event is a rendered notification. An empty To means "all superusers".
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	To         []string  `json:"to,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(kind Kind, subject, body string, to ...string) Event {
	return Event{
		ID:         uuid.New().String(),
		Kind:       kind,
		Subject:    subject,
		Body:       body,
		To:         to,
		OccurredAt: time.Now().UTC(),
	}
}

// OrderCreated describes a newly placed order. productName may be empty when the product is gone.
func OrderCreated(order *models.Order, productName string) Event {
	if productName == "" {
		productName = "Noma’lum"
	}
	body := fmt.Sprintf("Yangi buyurtma:\n\nMijoz: %s\nTelefon: %s\nProduct: %s\nMiqdori: %d",
		order.CustomerName, order.CustomerPhone, productName, order.Quantity)
	return newEvent(KindOrderCreated, "Yangi buyurtma qabul qilindi", body)
}

func productDetails(p *models.Product) string {
	return fmt.Sprintf("Nomi: %s\nNarxi: %s\nMiqdori: %d", p.Name, p.Price.StringFixed(2), p.Quantity)
}

func ProductCreated(p *models.Product) Event {
	return newEvent(KindProductCreated, "Yangi product qo‘shildi", "Yangi product qo‘shildi:\n\n"+productDetails(p))
}

func ProductUpdated(p *models.Product) Event {
	return newEvent(KindProductUpdated, "Product yangilandi", "Product ma’lumotlari yangilandi:\n\n"+productDetails(p))
}

func ProductDeleted(p *models.Product) Event {
	return newEvent(KindProductDeleted, "Product o‘chirildi", "Product o‘chirildi:\n\n"+productDetails(p))
}

func CategoryCreated(c *models.Category) Event {
	return newEvent(KindCategoryCreated, "Yangi kategoriya qo‘shildi", "Kategoriya qo‘shildi:\n\nNomi: "+c.Title)
}

func CategoryUpdated(c *models.Category) Event {
	return newEvent(KindCategoryUpdated, "Kategoriya yangilandi", "Kategoriya ma’lumotlari yangilandi:\n\nNomi: "+c.Title)
}

func CategoryDeleted(c *models.Category) Event {
	return newEvent(KindCategoryDeleted, "Kategoriya o‘chirildi", "Kategoriya o‘chirildi:\n\nNomi: "+c.Title)
}

func customerDetails(c *models.Customer) string {
	return fmt.Sprintf("Ism: %s\nEmail: %s\nTelefon: %s", c.Name, c.Email, c.Phone)
}

func CustomerCreated(c *models.Customer) Event {
	return newEvent(KindCustomerCreated, "Yangi customer qo‘shildi", "Yangi customer qo‘shildi:\n\n"+customerDetails(c))
}

func CustomerUpdated(c *models.Customer) Event {
	return newEvent(KindCustomerUpdated, "Customer ma’lumotlari yangilandi", "Customer ma’lumotlari yangilandi:\n\n"+customerDetails(c))
}

func CustomerDeleted(c *models.Customer) Event {
	return newEvent(KindCustomerDeleted, "Customer o‘chirildi", "Customer o‘chirildi:\n\n"+customerDetails(c))
}

// UserRegistered is addressed to the new user rather than to staff.
func UserRegistered(u *models.User) Event {
	body := fmt.Sprintf("Assalomu alaykum!\n\nSiz %s manzili bilan muvaffaqiyatli ro‘yxatdan o‘tdingiz.", u.Email)
	return newEvent(KindUserRegistered, "Successful Registration", body, u.Email)
}
