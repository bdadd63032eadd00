package seeders

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"cobranca-api/config"
	"cobranca-api/models"
)

func ptrString(s string) *string {
	return &s
}

func hashPassword(plain string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash)
}

func Seed() {
	rand.Seed(time.Now().UnixNano())

	// ============= Seed Users =============
	users := []models.User{
		{Username: "admin", Password: hashPassword("admin123"), Name: "Administrator", Role: models.RoleAdmin},
		{Username: "rep1", Password: hashPassword("rep123"), Name: "Field Representative", Role: models.RoleRepresentative},
		{Username: "customer1", Password: hashPassword("customer123"), Name: "Portal Customer", Role: models.RoleCustomer},
	}

	for _, user := range users {
		config.DB.FirstOrCreate(&user, models.User{Username: user.Username})
	}

	var rep models.User
	config.DB.Where("username = ?", "rep1").First(&rep)

	// ============= Seed Customers =============
	customers := []models.Customer{
		{Name: "Mercearia Central", Phone: ptrString("5511990000001"), RepresentativeID: &rep.ID},
		{Name: "Padaria do Bairro", Phone: ptrString("5511990000002"), RepresentativeID: &rep.ID},
		{Name: "Distribuidora Sul", Phone: ptrString("5511990000003")},
	}

	for _, customer := range customers {
		config.DB.FirstOrCreate(&customer, models.Customer{Name: customer.Name})
	}

	var allCustomers []models.Customer
	config.DB.Find(&allCustomers)

	// ============= Seed Orders =============
	orderCount := int64(0)
	config.DB.Model(&models.Order{}).Count(&orderCount)
	if orderCount > 0 {
		fmt.Println("Seeding skipped, orders already present")
		return
	}

	for i := 0; i < 9; i++ {
		customer := allCustomers[rand.Intn(len(allCustomers))]
		gross := decimal.NewFromInt(int64(rand.Intn(1500) + 200))

		order := models.Order{
			Number:     fmt.Sprintf("PED-%04d", i+1),
			CustomerID: customer.ID,
			GrossValue: gross,
			Status:     models.OrderStatusOpen,
			Version:    1,
		}

		// a third of the orders carry a percentage discount
		if i%3 == 0 {
			order.DiscountType = models.DiscountPercent
			order.DiscountValue = decimal.NewFromInt(10)
		} else {
			order.DiscountType = models.DiscountFixed
		}

		config.DB.Create(&order)

		// some orders start with a cash deposit
		if i%2 == 0 {
			deposit := models.Deposit{
				ID:      uuid.New(),
				OrderID: order.ID,
				Method:  models.MethodCash,
				Amount:  gross.Div(decimal.NewFromInt(4)).Round(2),
			}
			config.DB.Create(&deposit)
		}
	}

	fmt.Println("Seeding done: 3 users + 3 customers + 9 open orders")
}
